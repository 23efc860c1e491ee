package authn

import (
	"path/filepath"
	"time"
)

const (
	// DefaultTokenEndpoint is Redox's OAuth2 token endpoint.
	DefaultTokenEndpoint = "https://api.redoxengine.com/v2/auth/token"
	// ExpiryBuffer is how long before its expiry a cached token is already considered invalid,
	// so that a token never expires while a request is in flight.
	ExpiryBuffer = 30 * time.Second
	// AssertionLifetime is the lifetime of a signed client assertion.
	AssertionLifetime = 5 * time.Minute
	// MaxTokenLifetime caps the expires_in accepted from the token endpoint.
	MaxTokenLifetime = 24 * time.Hour
)

// Config holds the client-side OAuth2 settings for authenticating against the Redox authorization server.
type Config struct {
	// PrivateKey is the PEM-encoded (PKCS8) RSA private key. Takes precedence over PrivateKeyPath.
	PrivateKey     string `koanf:"privatekey"`
	PrivateKeyPath string `koanf:"privatekeypath"`
	// PrivateKeyJWK is the JSON Web Key registered at Redox, used for its key ID. Takes precedence over PrivateKeyJWKPath.
	PrivateKeyJWK     string `koanf:"privatekeyjwk"`
	PrivateKeyJWKPath string `koanf:"privatekeyjwkpath"`
	ClientID          string `koanf:"clientid"`
	TokenEndpoint     string `koanf:"tokenendpoint"`
}

func DefaultConfig() Config {
	return Config{
		PrivateKeyPath:    filepath.Join(".", "private key.pem"),
		PrivateKeyJWKPath: filepath.Join(".", "private keyjwk.json"),
		TokenEndpoint:     DefaultTokenEndpoint,
	}
}

// Validate checks that the settings without a default are present.
func (c Config) Validate() error {
	if c.ClientID == "" {
		return &ConfigurationError{Setting: "clientid", Reason: "required setting is missing"}
	}
	if c.TokenEndpoint == "" {
		return &ConfigurationError{Setting: "tokenendpoint", Reason: "required setting is missing"}
	}
	return nil
}
