package authn

import (
	"os"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// SigningKey is the RSA private key used to sign client assertions, together with the key ID registered at
// the authorization server. It is immutable once loaded.
type SigningKey struct {
	key jwk.Key
}

// KeyID returns the registered key identifier (kid).
func (k *SigningKey) KeyID() string {
	return k.key.KeyID()
}

// LoadSigningKey reads the private key and the JWK from config, inline values taking precedence over files.
// Any problem is reported as a ConfigurationError.
func LoadSigningKey(config Config) (*SigningKey, error) {
	keyPEM, err := inlineOrFile(config.PrivateKey, config.PrivateKeyPath)
	if err != nil {
		return nil, &ConfigurationError{Setting: "privatekey", Reason: "unable to read private key", Cause: err}
	}
	key, err := jwk.ParseKey(keyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, &ConfigurationError{Setting: "privatekey", Reason: "unable to parse PEM private key", Cause: err}
	}
	if _, ok := key.(jwk.RSAPrivateKey); !ok {
		return nil, &ConfigurationError{Setting: "privatekey", Reason: "expected an RSA private key, got " + string(key.KeyType())}
	}

	jwkJSON, err := inlineOrFile(config.PrivateKeyJWK, config.PrivateKeyJWKPath)
	if err != nil {
		return nil, &ConfigurationError{Setting: "privatekeyjwk", Reason: "unable to read JWK", Cause: err}
	}
	registered, err := jwk.ParseKey(jwkJSON)
	if err != nil {
		return nil, &ConfigurationError{Setting: "privatekeyjwk", Reason: "unable to parse JWK", Cause: err}
	}
	if registered.KeyID() == "" {
		return nil, &ConfigurationError{Setting: "privatekeyjwk", Reason: "JWK has no kid"}
	}

	if err := key.Set(jwk.KeyIDKey, registered.KeyID()); err != nil {
		return nil, &ConfigurationError{Setting: "privatekeyjwk", Reason: "unable to set kid", Cause: err}
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.RS384); err != nil {
		return nil, &ConfigurationError{Setting: "privatekey", Reason: "unable to set alg", Cause: err}
	}
	return &SigningKey{key: key}, nil
}

func inlineOrFile(inline string, path string) ([]byte, error) {
	if inline != "" {
		// Single-line environment variables commonly carry escaped newlines
		if !strings.Contains(inline, "\n") {
			inline = strings.ReplaceAll(inline, `\n`, "\n")
		}
		return []byte(inline), nil
	}
	return os.ReadFile(path) // #nosec G304 - path comes from operator configuration
}
