package authn

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// TestKeyMaterial generates an RSA key pair for tests. It returns the PKCS8 PEM-encoded private key, and the public
// key as JWK carrying the given key ID.
func TestKeyMaterial(kid string) (privateKeyPEM string, publicJWK string, err error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return "", "", err
	}
	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return "", "", err
	}
	publicKey, err := jwk.FromRaw(privateKey.Public())
	if err != nil {
		return "", "", err
	}
	if err := publicKey.Set(jwk.KeyIDKey, kid); err != nil {
		return "", "", err
	}
	data, err := json.Marshal(publicKey)
	if err != nil {
		return "", "", err
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})), string(data), nil
}
