// Package server wires the user service together: it opens the database,
// applies the schema, and runs the HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/config"
	"github.com/dmitrijs2005/usersvc/internal/server/events"
	"github.com/dmitrijs2005/usersvc/internal/server/ratelimit"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/usersvc/internal/server/rest"
	"github.com/dmitrijs2005/usersvc/internal/server/services"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4/middleware"
)

const connectRetryDelay = 3 * time.Second

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	redis     *redis.Client
	publisher events.Publisher
	server    *rest.HTTPServer
}

// NewApp opens every backing connection and builds the HTTP server. On error
// whatever was opened is closed again.
func NewApp(ctx context.Context, c *config.Config) (app *App, err error) {
	logger, err := logging.New(c.LogBackend, os.Stdout)
	if err != nil {
		return nil, err
	}

	app = &App{config: c, logger: logger, publisher: events.NopPublisher{}}
	defer func() {
		if err != nil {
			app.close(ctx)
			app = nil
		}
	}()

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	app.db, err = dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN, c.DatabaseConnectRetries, connectRetryDelay, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, app.db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if len(c.KafkaBrokers) > 0 {
		w := events.NewKafkaWriter(c.KafkaBrokers, c.KafkaTopic, logger)
		app.publisher = events.NewKafkaPublisher(w)
		logger.Info(ctx, "publishing user events", "brokers", c.KafkaBrokers, "topic", c.KafkaTopic)
	}

	// A nil *redis.Client must not reach NewStore: as a Counter it is
	// non-nil and would select the Redis store.
	var store middleware.RateLimiterStore
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		store = ratelimit.NewStore(c.RateLimitRPS, c.RateLimitBurst, app.redis, logger)
	} else {
		store = ratelimit.NewStore(c.RateLimitRPS, c.RateLimitBurst, nil, logger)
	}

	us := services.NewUserService(app.db, rm, app.publisher, logger)
	app.server = rest.NewHTTPServer(c.EndpointAddrHTTP, logger, us, store, c.ShutdownTimeout)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a signal arrives, then releases all
// connections.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "HTTP server", "error", err)
	}

	app.close(ctx)
	app.logger.Info(ctx, "App stopped")

	return err
}

func (app *App) close(ctx context.Context) {
	var errs []error
	if app.publisher != nil {
		errs = append(errs, app.publisher.Close())
	}
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(ctx, "closing resources", "error", err)
	}
}
