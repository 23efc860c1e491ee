package authn

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"k8s.io/utils/clock"
)

// AssertionSigner creates client assertions (RFC 7523) proving possession of the registered private key.
type AssertionSigner struct {
	key      *SigningKey
	clientID string
	audience string
	clock    clock.PassiveClock
}

func NewAssertionSigner(key *SigningKey, clientID string, tokenEndpoint string, clk clock.PassiveClock) *AssertionSigner {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &AssertionSigner{
		key:      key,
		clientID: clientID,
		audience: tokenEndpoint,
		clock:    clk,
	}
}

// Sign returns a fresh RS384-signed assertion. Every call yields a distinct token (new jti), so an assertion is
// used for exactly one token request.
func (s *AssertionSigner) Sign() (string, error) {
	jti, err := randomHex(8)
	if err != nil {
		return "", fmt.Errorf("generate jti: %w", err)
	}
	now := s.clock.Now()
	assertion := jwt.New()
	assertion.Options().Enable(jwt.FlattenAudience)
	claims := map[string]any{
		jwt.IssuerKey:     s.clientID,
		jwt.SubjectKey:    s.clientID,
		jwt.AudienceKey:   []string{s.audience},
		jwt.IssuedAtKey:   now,
		jwt.ExpirationKey: now.Add(AssertionLifetime),
		jwt.JwtIDKey:      jti,
	}
	for key, value := range claims {
		if err := assertion.Set(key, value); err != nil {
			return "", fmt.Errorf("set %s: %w", key, err)
		}
	}
	headers := jws.NewHeaders()
	if err := headers.Set(jws.KeyIDKey, s.key.KeyID()); err != nil {
		return "", fmt.Errorf("set kid header: %w", err)
	}
	signed, err := jwt.Sign(assertion, jwt.WithKey(jwa.RS384, s.key.key, jws.WithProtectedHeaders(headers)))
	if err != nil {
		return "", &ConfigurationError{Setting: "privatekey", Reason: "unable to sign client assertion", Cause: err}
	}
	return string(signed), nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
