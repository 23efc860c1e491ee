package cmd

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/redoxbridge/redoxbridge/component"
	httpComponent "github.com/redoxbridge/redoxbridge/component/http"
	"github.com/redoxbridge/redoxbridge/component/redox"
	"github.com/redoxbridge/redoxbridge/component/status"
	"github.com/redoxbridge/redoxbridge/lib/logging"
)

const shutdownTimeout = 10 * time.Second

// Start creates and starts all components, and blocks until ctx is cancelled. It then stops the components.
// Invalid configuration (including unusable key material) fails here, before anything is served.
func Start(ctx context.Context, config Config) error {
	if err := logging.Init(config.Logging); err != nil {
		return errors.Wrap(err, "failed to initialize logging")
	}
	log.Info().Str("version", status.Version()).Msg("Starting Redox bridge")

	publicMux := http.NewServeMux()
	internalMux := http.NewServeMux()

	redoxComponent, err := redox.New(config.Redox)
	if err != nil {
		return errors.Wrap(err, "failed to create Redox component")
	}
	components := []component.Lifecycle{
		redoxComponent,
		status.New(redoxComponent.Tokens()),
		// HTTP component last, so handlers are registered and components started before anything is served
		httpComponent.New(config.HTTP, publicMux, internalMux),
	}

	// Components: RegisterHandlers()
	for _, cmp := range components {
		cmp.RegisterHttpHandlers(publicMux, internalMux)
	}

	// Components: Start()
	for _, cmp := range components {
		log.Debug().Str("component", logging.Component(cmp)).Msg("Starting component")
		if err := cmp.Start(); err != nil {
			return errors.Wrapf(err, "failed to start component: %T", cmp)
		}
		log.Debug().Str("component", logging.Component(cmp)).Msg("Component started")
	}

	log.Debug().Msg("System started, waiting for shutdown...")
	<-ctx.Done()

	// Components: Stop()
	log.Debug().Msg("Shutdown signalled, stopping components...")
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	for i := len(components) - 1; i >= 0; i-- {
		cmp := components[i]
		if err := cmp.Stop(stopCtx); err != nil {
			log.Error().Err(err).Str("component", logging.Component(cmp)).Msg("Error stopping component")
		}
	}
	log.Info().Msg("Goodbye!")
	return nil
}
