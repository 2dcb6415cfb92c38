package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/usersvc/internal/flagx"
	"github.com/dmitrijs2005/usersvc/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Only keys
// present in the file override the current values.
type JsonConfig struct {
	EndpointAddrHTTP       *string         `json:"endpoint_addr_http"`
	DatabaseDriver         *string         `json:"database_driver"`
	DatabaseDSN            *string         `json:"database_dsn"`
	DatabaseConnectRetries *int            `json:"database_connect_retries"`
	LogBackend             *string         `json:"log_backend"`
	RateLimitRPS           *float64        `json:"rate_limit_rps"`
	RateLimitBurst         *int            `json:"rate_limit_burst"`
	RedisAddr              *string         `json:"redis_addr"`
	KafkaBrokers           []string        `json:"kafka_brokers"`
	KafkaTopic             *string         `json:"kafka_topic"`
	ShutdownTimeout        *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file given with -c or -config.
// Without the flag nothing is loaded. An unreadable or invalid file panics,
// since the service cannot start with a configuration it did not understand.
func parseJson(config *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDriver, c.DatabaseDriver)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.DatabaseConnectRetries, c.DatabaseConnectRetries)
	setIf(&config.LogBackend, c.LogBackend)
	setIf(&config.RateLimitRPS, c.RateLimitRPS)
	setIf(&config.RateLimitBurst, c.RateLimitBurst)
	setIf(&config.RedisAddr, c.RedisAddr)
	setIf(&config.KafkaTopic, c.KafkaTopic)
	if c.KafkaBrokers != nil {
		config.KafkaBrokers = c.KafkaBrokers
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
