package redox

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/redoxbridge/redoxbridge/component"
	"github.com/redoxbridge/redoxbridge/component/authn"
)

var _ component.Lifecycle = (*Component)(nil)

// Component wires the token manager and the FHIR client, and exposes the patient data API.
type Component struct {
	config Config
	tokens *authn.Manager
	client *Client
}

// New validates the configuration and loads the signing key. Configuration problems are returned as
// authn.ConfigurationError, so they surface at startup rather than on the first search.
func New(config Config) (*Component, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	// Token and search requests share one client, and thus one deadline
	httpClient := &http.Client{Timeout: config.Timeout}
	tokens, err := authn.New(config.Auth, httpClient)
	if err != nil {
		return nil, err
	}
	client, err := NewClient(config, tokens, httpClient)
	if err != nil {
		return nil, &authn.ConfigurationError{Setting: "fhirbaseurl", Reason: "invalid URL", Cause: err}
	}
	return &Component{
		config: config,
		tokens: tokens,
		client: client,
	}, nil
}

func (c *Component) Start() error {
	log.Info().
		Str("orgId", c.config.OrgID).
		Str("env", c.config.Env).
		Str("sourceId", c.config.SourceID).
		Str("fhirServer", c.client.baseURL.String()).
		Msg("Redox configuration loaded")
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	// Nothing to do
	return nil
}

func (c *Component) RegisterHttpHandlers(publicMux *http.ServeMux, _ *http.ServeMux) {
	registerAPI(publicMux, c.client)
}

// Tokens returns the token manager, e.g. to report token readiness.
func (c *Component) Tokens() *authn.Manager {
	return c.tokens
}

func (c *Component) Client() *Client {
	return c.client
}
