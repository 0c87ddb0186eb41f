package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViper_DefaultsWithoutFile(t *testing.T) {
	v, err := newViper(t.TempDir())
	require.NoError(t, err)

	cfg := configFrom(v)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "finance.db", cfg.DBPath)
	assert.Equal(t, "/secure-finance-manager", cfg.BasePath)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestNewViper_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yml := []byte("port: \"9090\"\ndb:\n  path: /tmp/x.db\ncrypto:\n  passphrase: from-file\n  salt: pepper-salt\nauth:\n  token_ttl: 30m\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), yml, 0o600))

	t.Setenv("FINANCE_DB_PATH", "/data/env.db")
	t.Setenv("FINANCE_AUTH_SIGNING_KEY", "env-key")

	v, err := newViper(dir)
	require.NoError(t, err)

	cfg := configFrom(v)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/data/env.db", cfg.DBPath)
	assert.Equal(t, "env-key", cfg.SigningKey)
	assert.Equal(t, "from-file", cfg.CryptoPassphrase)
	assert.Equal(t, "pepper-salt", cfg.CryptoSalt)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestNewViper_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("port: [unclosed"), 0o600))

	_, err := newViper(dir)
	require.Error(t, err)
}

func TestAppConfig_Validate(t *testing.T) {
	v, err := newViper(t.TempDir())
	require.NoError(t, err)

	cfg := configFrom(v)
	assert.EqualError(t, cfg.validate(), "auth.signing_key is required")

	t.Setenv("FINANCE_AUTH_SIGNING_KEY", "env-key")
	v, err = newViper(t.TempDir())
	require.NoError(t, err)
	cfg = configFrom(v)
	assert.EqualError(t, cfg.validate(), "crypto.passphrase is required")

	t.Setenv("FINANCE_CRYPTO_PASSPHRASE", "env-pass")
	v, err = newViper(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, configFrom(v).validate())
}
