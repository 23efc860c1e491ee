package status

import (
	"context"
	"net/http"

	"github.com/redoxbridge/redoxbridge/component"
	"github.com/redoxbridge/redoxbridge/lib/fhirapi"
	"github.com/redoxbridge/redoxbridge/lib/metrics"
)

var _ component.Lifecycle = (*Component)(nil)

// TokenStatus reports whether a usable access token is cached.
type TokenStatus interface {
	Valid() bool
}

type Component struct {
	tokens TokenStatus
}

// New creates an instance of the status component, which provides the health check, token readiness and metrics endpoints.
func New(tokens TokenStatus) *Component {
	return &Component{tokens: tokens}
}

func (c Component) Start() error {
	// Nothing to do
	return nil
}

func (c Component) Stop(_ context.Context) error {
	// Nothing to do
	return nil
}

func (c Component) RegisterHttpHandlers(publicMux *http.ServeMux, internalMux *http.ServeMux) {
	publicMux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	internalMux.HandleFunc("GET /status/token", func(w http.ResponseWriter, r *http.Request) {
		// Reports on the cache only, it never triggers a token request
		fhirapi.SendJSONResponse(r.Context(), w, http.StatusOK, map[string]any{
			"valid":   c.tokens.Valid(),
			"version": Version(),
		})
	})
	internalMux.Handle("GET /metrics", metrics.Handler())
}
