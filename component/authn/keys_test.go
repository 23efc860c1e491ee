package authn

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSigningKey(t *testing.T) {
	privateKeyPEM, publicJWK, err := TestKeyMaterial("key-1")
	require.NoError(t, err)

	t.Run("inline", func(t *testing.T) {
		key, err := LoadSigningKey(Config{PrivateKey: privateKeyPEM, PrivateKeyJWK: publicJWK})

		require.NoError(t, err)
		assert.Equal(t, "key-1", key.KeyID())
	})
	t.Run("inline with escaped newlines", func(t *testing.T) {
		escaped := strings.ReplaceAll(privateKeyPEM, "\n", `\n`)

		key, err := LoadSigningKey(Config{PrivateKey: escaped, PrivateKeyJWK: publicJWK})

		require.NoError(t, err)
		assert.Equal(t, "key-1", key.KeyID())
	})
	t.Run("from files", func(t *testing.T) {
		dir := t.TempDir()
		keyPath := filepath.Join(dir, "private key.pem")
		jwkPath := filepath.Join(dir, "private keyjwk.json")
		require.NoError(t, os.WriteFile(keyPath, []byte(privateKeyPEM), 0600))
		require.NoError(t, os.WriteFile(jwkPath, []byte(publicJWK), 0600))

		key, err := LoadSigningKey(Config{PrivateKeyPath: keyPath, PrivateKeyJWKPath: jwkPath})

		require.NoError(t, err)
		assert.Equal(t, "key-1", key.KeyID())
	})
	t.Run("inline takes precedence over file", func(t *testing.T) {
		key, err := LoadSigningKey(Config{
			PrivateKey:        privateKeyPEM,
			PrivateKeyPath:    filepath.Join(t.TempDir(), "does-not-exist.pem"),
			PrivateKeyJWK:     publicJWK,
			PrivateKeyJWKPath: filepath.Join(t.TempDir(), "does-not-exist.json"),
		})

		require.NoError(t, err)
		assert.Equal(t, "key-1", key.KeyID())
	})
	t.Run("private key file does not exist", func(t *testing.T) {
		_, err := LoadSigningKey(Config{PrivateKeyPath: filepath.Join(t.TempDir(), "missing.pem"), PrivateKeyJWK: publicJWK})

		var configErr *ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "privatekey", configErr.Setting)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("malformed PEM", func(t *testing.T) {
		_, err := LoadSigningKey(Config{PrivateKey: "not a key", PrivateKeyJWK: publicJWK})

		var configErr *ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "privatekey", configErr.Setting)
	})
	t.Run("not an RSA key", func(t *testing.T) {
		ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		der, err := x509.MarshalPKCS8PrivateKey(ecKey)
		require.NoError(t, err)
		ecPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

		_, err = LoadSigningKey(Config{PrivateKey: ecPEM, PrivateKeyJWK: publicJWK})

		require.ErrorContains(t, err, "expected an RSA private key")
	})
	t.Run("JWK without kid", func(t *testing.T) {
		_, withoutKID, err := TestKeyMaterial("")
		require.NoError(t, err)

		_, err = LoadSigningKey(Config{PrivateKey: privateKeyPEM, PrivateKeyJWK: withoutKID})

		var configErr *ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "privatekeyjwk", configErr.Setting)
		assert.ErrorContains(t, err, "JWK has no kid")
	})
	t.Run("malformed JWK", func(t *testing.T) {
		_, err := LoadSigningKey(Config{PrivateKey: privateKeyPEM, PrivateKeyJWK: "{"})

		var configErr *ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "privatekeyjwk", configErr.Setting)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		config := DefaultConfig()
		config.ClientID = "client"
		assert.NoError(t, config.Validate())
	})
	t.Run("missing client ID", func(t *testing.T) {
		err := DefaultConfig().Validate()

		var configErr *ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "clientid", configErr.Setting)
		assert.EqualError(t, err, "invalid configuration (clientid): required setting is missing")
	})
	t.Run("missing token endpoint", func(t *testing.T) {
		err := Config{ClientID: "client"}.Validate()

		var configErr *ConfigurationError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "tokenendpoint", configErr.Setting)
	})
}
