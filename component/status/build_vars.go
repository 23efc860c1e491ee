package status

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time through -ldflags "-X ...".
var (
	GitCommit  = "0"
	GitVersion string
)

const developmentVersion = "development"

// Version returns the release tag the binary was built from, else the module version, else "development".
func Version() string {
	if GitVersion != "" && GitVersion != "undefined" {
		return GitVersion
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return developmentVersion
}

func BuildInfo() string {
	b := strings.Builder{}
	_, _ = fmt.Fprintf(&b, "Git version: %s\n", Version())
	_, _ = fmt.Fprintf(&b, "Git commit: %s\n", GitCommit)
	_, _ = fmt.Fprintf(&b, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return b.String()
}
