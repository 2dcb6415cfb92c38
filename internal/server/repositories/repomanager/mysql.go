package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/usersvc/internal/server/migrations"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/users"
	_ "github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
)

// MySQLRepositoryManager vends MySQL-backed repositories.
type MySQLRepositoryManager struct{}

func NewMySQLRepositoryManager() *MySQLRepositoryManager {
	return &MySQLRepositoryManager{}
}

func (m *MySQLRepositoryManager) Users(db *sql.DB) users.Repository {
	return users.NewMySQLRepository(db)
}

// RunMigrations applies the embedded MySQL migrations.
func (m *MySQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, migrations.MySQLDir)
}
