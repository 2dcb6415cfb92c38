package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origDotEnv := dotEnvFile
	t.Cleanup(func() { dotEnvFile = origDotEnv })
	dotEnvFile = filepath.Join(t.TempDir(), "missing.env")

	t.Setenv(envAddress, ":6000")
	t.Setenv(envDatabaseDriver, "mysql")
	t.Setenv(envDatabaseDSN, "dsn")
	t.Setenv(envConnectRetries, "4")
	t.Setenv(envLogBackend, "zerolog")
	t.Setenv(envRateLimitRPS, "0")
	t.Setenv(envRateLimitBurst, "7")
	t.Setenv(envRedisAddr, "redis:6379")
	t.Setenv(envKafkaBrokers, " a:9092, ,b:9092 ")
	t.Setenv(envKafkaTopic, "topic")
	t.Setenv(envShutdown, "3s")

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, ":6000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "mysql", cfg.DatabaseDriver)
	assert.Equal(t, "dsn", cfg.DatabaseDSN)
	assert.Equal(t, 4, cfg.DatabaseConnectRetries)
	assert.Equal(t, "zerolog", cfg.LogBackend)
	assert.Equal(t, 0.0, cfg.RateLimitRPS)
	assert.Equal(t, 7, cfg.RateLimitBurst)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "topic", cfg.KafkaTopic)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func Test_parseEnv_InvalidNumbersKeepPrevious(t *testing.T) {
	origDotEnv := dotEnvFile
	t.Cleanup(func() { dotEnvFile = origDotEnv })
	dotEnvFile = filepath.Join(t.TempDir(), "missing.env")

	t.Setenv(envConnectRetries, "lots")
	t.Setenv(envShutdown, "later")

	cfg := &Config{DatabaseConnectRetries: 9, ShutdownTimeout: time.Minute}
	parseEnv(cfg)

	assert.Equal(t, 9, cfg.DatabaseConnectRetries)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
}

func Test_parseEnv_DotEnvFile(t *testing.T) {
	origDotEnv := dotEnvFile
	t.Cleanup(func() { dotEnvFile = origDotEnv })

	_, present := os.LookupEnv(envRedisAddr)
	if present {
		t.Skipf("%s set in the environment", envRedisAddr)
	}
	t.Cleanup(func() { _ = os.Unsetenv(envRedisAddr) })

	dotEnvFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotEnvFile, []byte(envRedisAddr+"=cache:6379\n"), 0o600))

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "cache:6379", cfg.RedisAddr)
}
