package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/usersvc/internal/server/migrations"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestNew(t *testing.T) {
	m, err := New(DriverPostgres)
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)

	m, err = New(DriverMySQL)
	require.NoError(t, err)
	assert.IsType(t, &MySQLRepositoryManager{}, m)

	_, err = New("sqlite")
	assert.Error(t, err)
}

func TestUsers_ReturnDialectRepos(t *testing.T) {
	db := newDB(t)

	assert.IsType(t, &users.PostgresRepository{}, NewPostgresRepositoryManager().Users(db))
	assert.IsType(t, &users.MySQLRepository{}, NewMySQLRepositoryManager().Users(db))
}

func TestRunMigrations_UsesDialectDir(t *testing.T) {
	tests := []struct {
		name    string
		manager RepositoryManager
		wantDir string
	}{
		{"postgres", NewPostgresRepositoryManager(), migrations.PostgresDir},
		{"mysql", NewMySQLRepositoryManager(), migrations.MySQLDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDir string
			stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
				gotDir = dir
				return nil
			})

			require.NoError(t, tt.manager.RunMigrations(context.Background(), newDB(t)))
			assert.Equal(t, tt.wantDir, gotDir)
		})
	}
}

func TestRunMigrations_Error(t *testing.T) {
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), newDB(t))
	assert.EqualError(t, err, "boom")
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	for _, dir := range []string{migrations.PostgresDir, migrations.MySQLDir} {
		entries, err := migrations.Migrations.ReadDir(dir)
		require.NoError(t, err, dir)
		assert.NotEmpty(t, entries, dir)
	}
}
