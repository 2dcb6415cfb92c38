package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/logging"
)

// Open opens a pool for driver and pings it up to attempts times, delay
// apart, so the service can start before the database is ready.
func Open(ctx context.Context, driver, dsn string, attempts int, delay time.Duration, l logging.Logger) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if attempts < 1 {
		attempts = 1
	}

	for i := 1; ; i++ {
		err = db.PingContext(ctx)
		if err == nil {
			return db, nil
		}
		if i >= attempts {
			break
		}

		l.Warn(ctx, "database not ready", "attempt", i, "of", attempts, "error", err)

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	db.Close()
	return nil, fmt.Errorf("ping db after %d attempts: %w", attempts, err)
}
