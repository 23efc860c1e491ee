package cmd

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	pkgerrors "github.com/pkg/errors"

	"github.com/redoxbridge/redoxbridge/component/http"
	"github.com/redoxbridge/redoxbridge/component/redox"
	"github.com/redoxbridge/redoxbridge/lib/logging"
)

const (
	configFile = "config/redoxbridge.yml"
	envPrefix  = "BRIDGE_"
	// redoxEnvPrefix is the prefix of the Redox integration's established environment variables.
	redoxEnvPrefix = "REDOX_"
)

// redoxEnvKeys maps the Redox environment variables (without prefix) onto their config keys.
var redoxEnvKeys = map[string]string{
	"PRIVATE_KEY":          "redox.auth.privatekey",
	"PRIVATE_KEY_PATH":     "redox.auth.privatekeypath",
	"PRIVATE_KEY_JWK":      "redox.auth.privatekeyjwk",
	"PRIVATE_KEY_JWK_PATH": "redox.auth.privatekeyjwkpath",
	"CLIENT_ID":            "redox.auth.clientid",
	"TOKEN_ENDPOINT":       "redox.auth.tokenendpoint",
	"FHIR_BASE_URL":        "redox.fhirbaseurl",
	"ORG_ID":               "redox.orgid",
	"ENV":                  "redox.env",
	"SOURCE_ID":            "redox.sourceid",
	"TIMEOUT":              "redox.timeout",
}

type Config struct {
	HTTP    http.Config    `koanf:"http"`
	Redox   redox.Config   `koanf:"redox"`
	Logging logging.Config `koanf:"logging"`
}

func DefaultConfig() Config {
	return Config{
		HTTP:    http.DefaultConfig(),
		Redox:   redox.DefaultConfig(),
		Logging: logging.DefaultConfig(),
	}
}

// LoadConfig loads the configuration on top of the defaults, from (in order of precedence, lowest first):
// config/redoxbridge.yml if it exists, REDOX_* variables and BRIDGE_<SECTION>_<KEY> variables.
func LoadConfig() (Config, error) {
	k := koanf.New(".")
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return Config{}, pkgerrors.Wrapf(err, "failed to load %s", configFile)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, pkgerrors.Wrapf(err, "failed to stat %s", configFile)
	}
	if err := k.Load(env.Provider(redoxEnvPrefix, ".", redoxEnvKey), nil); err != nil {
		return Config{}, pkgerrors.Wrap(err, "failed to load Redox environment variables")
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, pkgerrors.Wrap(err, "failed to load environment variables")
	}

	config := DefaultConfig()
	if err := k.Unmarshal("", &config); err != nil {
		return Config{}, pkgerrors.Wrap(err, "failed to unmarshal config")
	}
	return config, nil
}

// redoxEnvKey maps e.g. REDOX_CLIENT_ID to redox.auth.clientid. Unknown variables are ignored.
func redoxEnvKey(name string) string {
	return redoxEnvKeys[strings.TrimPrefix(name, redoxEnvPrefix)]
}

// envKey maps e.g. BRIDGE_HTTP_PUBLIC_LISTENER to http.public.listener.
func envKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(name, envPrefix)), "_", ".")
}
