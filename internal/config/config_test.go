package config_test

import (
	"os"
	"testing"
	"time"

	"service-dispatch/internal/config"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"DISPATCH_AREA_THRESHOLD", "DISPATCH_MAX_ATTEMPTS", "DISPATCH_OPERATION_TIMEOUT",
		"RATE_LIMIT_ENABLED", "KAFKA_BROKERS", "KAFKA_TOPIC", "CUSTOMER_API_BASE_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 8080, cfg.Port)

	require.Equal(t, "127.0.0.1", cfg.DB.Host)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, "myuser", cfg.DB.User)
	require.Equal(t, "mypassword", cfg.DB.Pass)
	require.Equal(t, "dispatch_db", cfg.DB.Name)

	require.Equal(t, 0.3, cfg.Dispatch.AreaThreshold)
	require.Equal(t, 3, cfg.Dispatch.MaxAttempts)
	require.Equal(t, 3*time.Second, cfg.Dispatch.OperationTimeout)

	require.False(t, cfg.RateLimit.Enabled)
	require.Empty(t, cfg.Kafka.Brokers)
	require.Empty(t, cfg.CustomerAPI.BaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "15432")
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "dispatch")
	t.Setenv("DISPATCH_AREA_THRESHOLD", "0.45")
	t.Setenv("DISPATCH_MAX_ATTEMPTS", "5")
	t.Setenv("DISPATCH_OPERATION_TIMEOUT", "7s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("CUSTOMER_API_BASE_URL", "http://storefront:3000")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "postgres://u:p@db:15432/dispatch?sslmode=disable", cfg.DB.DSN())
	require.Equal(t, 0.45, cfg.Dispatch.AreaThreshold)
	require.Equal(t, 5, cfg.Dispatch.MaxAttempts)
	require.Equal(t, 7*time.Second, cfg.Dispatch.OperationTimeout)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "http://storefront:3000", cfg.CustomerAPI.BaseURL)
}

func TestLoad_InvalidPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "70000")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("DISPATCH_AREA_THRESHOLD", "1.7")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "9090")

	oldArgs := os.Args
	os.Args = []string{oldArgs[0], "--port", "9191"}
	t.Cleanup(func() { os.Args = oldArgs })

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Port)
}
