package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("BUNNY_LIBRARY_ID", "lib42")
	t.Setenv("BUNNY_ACCESS_KEY", "bk_123")
	t.Setenv("STORAGE_BUCKET", "images")
	t.Setenv("STORAGE_ACCESS_KEY", "ak")
	t.Setenv("STORAGE_SECRET_KEY", "sk")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "eur", cfg.Currency)
	assert.Equal(t, "https://video.bunnycdn.com", cfg.BunnyAPIBaseURL)
	assert.Equal(t, "us-east-1", cfg.StorageRegion)
	assert.Equal(t, "lib42", cfg.BunnyLibraryID)
}

func TestLoadPrefersEnvOverDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("CURRENCY", "usd")
	t.Setenv("BUNNY_API_BASE_URL", "http://bunny.local")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "usd", cfg.Currency)
	assert.Equal(t, "http://bunny.local", cfg.BunnyAPIBaseURL)
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("SOME_SET_KEY", "value")
	assert.Equal(t, "value", getEnv("SOME_SET_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("SOME_UNSET_KEY", "fallback"))
}
