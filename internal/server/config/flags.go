package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-e string   database driver: pgx or mysql
//	-d string   database DSN
//	-n int      database connect attempts on startup
//	-l string   log backend: slog-json, slog-text or zerolog
//	-q float    rate limit, requests per second per client (<= 0 disables)
//	-b int      rate limit burst
//	-r string   Redis address for shared rate-limit counters
//	-k string   comma-separated Kafka brokers
//	-t string   Kafka topic for user events
//	-w int      shutdown timeout, seconds
//
// os.Args is filtered with flagx.FilterArgs first so the -c/-config flag read
// by parseJson does not trip this flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-e", "-d", "-n", "-l", "-q", "-b", "-r", "-k", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "e", config.DatabaseDriver, "database driver (pgx|mysql)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.DatabaseConnectRetries, "n", config.DatabaseConnectRetries, "database connect attempts")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog-json|slog-text|zerolog)")
	fs.Float64Var(&config.RateLimitRPS, "q", config.RateLimitRPS, "rate limit, requests per second")
	fs.IntVar(&config.RateLimitBurst, "b", config.RateLimitBurst, "rate limit burst")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.KafkaTopic, "t", config.KafkaTopic, "kafka topic")

	var brokers string
	fs.StringVar(&brokers, "k", "", "comma-separated kafka brokers")

	shutdown := fs.Int("w", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if brokers != "" {
		config.KafkaBrokers = splitList(brokers)
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "w" {
			config.ShutdownTimeout = time.Duration(*shutdown) * time.Second
		}
	})
}
