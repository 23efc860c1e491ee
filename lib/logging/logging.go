// Package logging configures the global zerolog logger and provides request-scoped loggers.
package logging

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"

	// RequestIDHeader carries the request id, both inbound (if the caller provides one) and in the response.
	RequestIDHeader = "X-Request-Id"
)

type Config struct {
	// Level is one of trace, debug, info, warn, error.
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func DefaultConfig() Config {
	return Config{
		Level:  zerolog.InfoLevel.String(),
		Format: FormatJSON,
	}
}

// Init configures the global logger. Loggers taken from a context without one attached fall back to it.
func Init(config Config) error {
	return initTo(os.Stdout, config)
}

func initTo(writer io.Writer, config Config) error {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}
	switch config.Format {
	case FormatJSON, "":
	case FormatConsole:
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	default:
		return fmt.Errorf("invalid log format %q", config.Format)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

// Middleware attaches a logger carrying the request id to the request context, and echoes the id in the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(httpResponse http.ResponseWriter, httpRequest *http.Request) {
		requestID := httpRequest.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		logger := log.With().
			Str("requestId", requestID).
			Str("method", httpRequest.Method).
			Str("path", httpRequest.URL.Path).
			Logger()
		httpResponse.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(httpResponse, httpRequest.WithContext(logger.WithContext(httpRequest.Context())))
	})
}

// Component returns the type name of a component, used as log field.
func Component(v any) string {
	return fmt.Sprintf("%T", v)
}
