package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, username, first_name, last_name, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, email, username, first_name, last_name, password`

	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.FirstName, user.LastName, user.Password))

	return u, translate(err)
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET email = $1, username = $2, first_name = $3, last_name = $4, password = $5
		 WHERE id = $6
		 RETURNING id, email, username, first_name, last_name, password`

	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.FirstName, user.LastName, user.Password, user.ID))

	return u, translate(err)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, username, first_name, last_name, password FROM users
		 WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))

	return u, translate(err)
}

func (r *PostgresRepository) FindConflict(ctx context.Context, email, username string, excludeID int64) (*Conflict, error) {
	query :=
		`SELECT id, email, username, first_name, last_name, password,
		        CASE WHEN email = $1 THEN 1 ELSE 0 END AS email_match
		 FROM users
		 WHERE (email = $1 OR username = $2) AND id <> $3
		 ORDER BY email_match DESC, id
		 LIMIT 1`

	c, err := scanConflict(r.db.QueryRowContext(ctx, query, email, username, excludeID))

	return c, translate(err)
}

// translate maps sql.ErrNoRows to common.ErrorNotFound and wraps every other
// error. nil stays nil.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
