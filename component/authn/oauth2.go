package authn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
	"k8s.io/utils/clock"

	"github.com/redoxbridge/redoxbridge/lib/metrics"
)

const (
	clientAssertionTypeJWT = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
	refreshKey             = "token"
)

var _ oauth2.TokenSource = (*Manager)(nil)

// Manager owns the cached access token. It hands out the cached token while it is valid and otherwise obtains a
// new one using the client credentials grant with a signed client assertion.
// Concurrent callers that find no valid token share a single token request.
type Manager struct {
	signer        *AssertionSigner
	tokenEndpoint string
	httpClient    *http.Client
	clock         clock.PassiveClock

	mu      sync.RWMutex
	current *oauth2.Token
	refresh singleflight.Group
}

// New loads the signing key and creates a Manager. It fails with a ConfigurationError when settings or key material
// are missing or unusable.
func New(config Config, httpClient *http.Client) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	key, err := LoadSigningKey(config)
	if err != nil {
		return nil, err
	}
	signer := NewAssertionSigner(key, config.ClientID, config.TokenEndpoint, clock.RealClock{})
	return NewManager(signer, config.TokenEndpoint, httpClient, clock.RealClock{}), nil
}

func NewManager(signer *AssertionSigner, tokenEndpoint string, httpClient *http.Client, clk clock.PassiveClock) *Manager {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Manager{
		signer:        signer,
		tokenEndpoint: tokenEndpoint,
		httpClient:    httpClient,
		clock:         clk,
	}
}

// AccessToken returns a bearer token that is valid for at least ExpiryBuffer.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	token, err := m.TokenContext(ctx)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Token implements oauth2.TokenSource.
func (m *Manager) Token() (*oauth2.Token, error) {
	return m.TokenContext(context.Background())
}

// TokenContext returns the cached token when valid, without any I/O. Otherwise it refreshes the token; callers
// arriving while a refresh is in flight wait for and share its outcome.
// A failed refresh leaves the cached token as it was.
func (m *Manager) TokenContext(ctx context.Context) (*oauth2.Token, error) {
	if token := m.validToken(); token != nil {
		return token, nil
	}
	result, err, _ := m.refresh.Do(refreshKey, func() (any, error) {
		// Another caller may have completed a refresh between our check and joining the flight
		if token := m.validToken(); token != nil {
			return token, nil
		}
		// The refresh is shared, so it must not be cancelled along with the first caller's request
		return m.requestToken(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	token := *result.(*oauth2.Token)
	return &token, nil
}

// Valid reports whether a token is cached that is usable for at least ExpiryBuffer.
func (m *Manager) Valid() bool {
	return m.validToken() != nil
}

func (m *Manager) validToken() *oauth2.Token {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	if !m.current.Expiry.Add(-ExpiryBuffer).After(m.clock.Now()) {
		return nil
	}
	token := *m.current
	return &token
}

func (m *Manager) requestToken(ctx context.Context) (*oauth2.Token, error) {
	log.Ctx(ctx).Debug().Msg("Refreshing Redox access token")
	assertion, err := m.signer.Sign()
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Ctx(ctx).Error().Err(err).Str("tokenEndpoint", m.tokenEndpoint).Msg("Failed to sign client assertion")
		return nil, err
	}
	// Every refresh presents a new assertion, so the config is built per request
	config := clientcredentials.Config{
		TokenURL:  m.tokenEndpoint,
		AuthStyle: oauth2.AuthStyleInParams,
		EndpointParams: url.Values{
			"client_assertion_type": {clientAssertionTypeJWT},
			"client_assertion":      {assertion},
		},
	}
	issued, err := config.Token(context.WithValue(ctx, oauth2.HTTPClient, m.httpClient))
	if err != nil {
		return nil, m.failed(ctx, err)
	}
	lifetime, err := tokenLifetime(issued)
	if err != nil {
		return nil, m.failed(ctx, err)
	}
	token := &oauth2.Token{
		AccessToken: issued.AccessToken,
		TokenType:   issued.Type(),
		Expiry:      m.clock.Now().Add(lifetime),
	}

	m.mu.Lock()
	m.current = token
	m.mu.Unlock()

	metrics.TokenRefreshes.WithLabelValues(metrics.OutcomeSuccess).Inc()
	log.Ctx(ctx).Debug().Time("expiresAt", token.Expiry).Msg("Redox access token refreshed")
	result := *token
	return &result, nil
}

// tokenLifetime reads expires_in from the token response. Lifetimes beyond MaxTokenLifetime are capped.
func tokenLifetime(token *oauth2.Token) (time.Duration, error) {
	var seconds float64
	switch value := token.Extra("expires_in").(type) {
	case float64:
		seconds = value
	case int64:
		seconds = float64(value)
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid expires_in in token response: %w", err)
		}
		seconds = parsed
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid expires_in in token response: %w", err)
		}
		seconds = parsed
	default:
		return 0, errors.New("token response does not contain expires_in")
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("invalid expires_in in token response: %v", seconds)
	}
	if seconds >= MaxTokenLifetime.Seconds() {
		return MaxTokenLifetime, nil
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func (m *Manager) failed(ctx context.Context, cause error) error {
	metrics.TokenRefreshes.WithLabelValues(metrics.OutcomeFailure).Inc()
	log.Ctx(ctx).Error().Err(cause).Str("tokenEndpoint", m.tokenEndpoint).Msg("Failed to refresh Redox access token")
	return &AuthenticationError{Cause: cause}
}
