package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	envAddress        = "USERSVC_ADDRESS"
	envDatabaseDriver = "USERSVC_DATABASE_DRIVER"
	envDatabaseDSN    = "USERSVC_DATABASE_DSN"
	envConnectRetries = "USERSVC_DATABASE_CONNECT_RETRIES"
	envLogBackend     = "USERSVC_LOG_BACKEND"
	envRateLimitRPS   = "USERSVC_RATE_LIMIT_RPS"
	envRateLimitBurst = "USERSVC_RATE_LIMIT_BURST"
	envRedisAddr      = "USERSVC_REDIS_ADDR"
	envKafkaBrokers   = "USERSVC_KAFKA_BROKERS"
	envKafkaTopic     = "USERSVC_KAFKA_TOPIC"
	envShutdown       = "USERSVC_SHUTDOWN_TIMEOUT"
)

// dotEnvFile is loaded into the process environment if it exists. Variables
// already set in the environment are not overwritten.
var dotEnvFile = ".env"

// parseEnv overlays values from USERSVC_* environment variables. Values that
// fail to parse are ignored and the previous setting is kept.
func parseEnv(config *Config) {
	_ = godotenv.Load(dotEnvFile)

	if v, ok := os.LookupEnv(envAddress); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(envDatabaseDriver); ok {
		config.DatabaseDriver = v
	}
	if v, ok := os.LookupEnv(envDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envConnectRetries); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.DatabaseConnectRetries = n
		}
	}
	if v, ok := os.LookupEnv(envLogBackend); ok {
		config.LogBackend = v
	}
	if v, ok := os.LookupEnv(envRateLimitRPS); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.RateLimitRPS = f
		}
	}
	if v, ok := os.LookupEnv(envRateLimitBurst); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.RateLimitBurst = n
		}
	}
	if v, ok := os.LookupEnv(envRedisAddr); ok {
		config.RedisAddr = v
	}
	if v, ok := os.LookupEnv(envKafkaBrokers); ok {
		config.KafkaBrokers = splitList(v)
	}
	if v, ok := os.LookupEnv(envKafkaTopic); ok {
		config.KafkaTopic = v
	}
	if v, ok := os.LookupEnv(envShutdown); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.ShutdownTimeout = d
		}
	}
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
