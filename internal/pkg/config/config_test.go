package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/PayBridge/internal/pkg/env"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	env.Env = nil
	t.Setenv("WEBHOOK_SECRET", "s3cr3t")
	t.Setenv("FIREBASE_DB_URL", "https://example-rtdb.firebaseio.com/")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.ListenAddr())
	assert.Equal(t, "s3cr3t", cfg.WebhookSecret)
	assert.Equal(t, "https://example-rtdb.firebaseio.com", cfg.Firebase.DatabaseURL, "trailing slash is trimmed")
	assert.Equal(t, DefaultForwardTimeout, cfg.Firebase.ForwardTimeout)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.False(t, cfg.Cache.Enabled())
	assert.False(t, cfg.Metrics.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "8080")
	t.Setenv("FORWARD_TIMEOUT", "3s")
	t.Setenv("CACHE_HOST", "cache")
	t.Setenv("CACHE_PORT", "6380")
	t.Setenv("METRICS_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Firebase.ForwardTimeout)
	assert.True(t, cfg.Cache.Enabled())
	assert.Equal(t, "cache:6380", cfg.Cache.Addr())
	assert.True(t, cfg.Metrics.Enabled())
}

func TestLoad_EnvFileTakesPrecedence(t *testing.T) {
	setRequiredEnv(t)
	env.Env = map[string]string{"WEBHOOK_SECRET": "from-file"}
	t.Cleanup(func() { env.Env = nil })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.WebhookSecret)
}

func TestLoad_MissingSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WEBHOOK_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WebhookSecret")
}

func TestLoad_InvalidFirebaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FIREBASE_DB_URL", "not a url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseURL")
}

func TestLoad_InvalidDurations(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FORWARD_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORWARD_TIMEOUT")

	t.Setenv("FORWARD_TIMEOUT", "-1s")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "http")

	_, err := Load()
	require.Error(t, err)
}
