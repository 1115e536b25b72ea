package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "Activity API", cfg.AppName)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, 168*time.Hour, cfg.InstanceTTL)
	require.Equal(t, 5*time.Minute, cfg.SchemaCacheTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NEWTON_APP_PORT", "9090")
	t.Setenv("NEWTON_DEPLOY_BASE_URL", "https://deploy.example.com/")
	t.Setenv("NEWTON_INSTANCE_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.AppPort)
	require.Equal(t, "https://deploy.example.com", cfg.DeployBaseURL)
	require.Equal(t, 24*time.Hour, cfg.InstanceTTL)
}

func TestLoadRejectsInvalidTTL(t *testing.T) {
	t.Setenv("NEWTON_INSTANCE_TTL", "next week")

	_, err := Load()
	require.Error(t, err)
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":9090", Config{AppPort: ":9090"}.HTTPAddress())
}
