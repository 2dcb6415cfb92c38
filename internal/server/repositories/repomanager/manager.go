package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/usersvc/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// RepositoryManager vends repositories for one SQL dialect and applies that
// dialect's schema.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db *sql.DB) users.Repository
}

// Database drivers understood by New. They are the database/sql driver
// names registered by pgx and go-sql-driver/mysql.
const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// New returns the RepositoryManager for the given database/sql driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	case DriverMySQL:
		return NewMySQLRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}
