package users

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/usersvc/internal/dbx"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
)

// MySQLRepository implements Repository for MySQL, which has no RETURNING
// clause: writes are followed by a re-select of the row inside the same
// transaction.
type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

const mysqlSelectByID = `SELECT id, email, username, first_name, last_name, password FROM users WHERE id = ?`

func (r *MySQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, username, first_name, last_name, password)
		 VALUES (?, ?, ?, ?, ?)`

	var created *models.User
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, query,
			user.Email, user.Username, user.FirstName, user.LastName, user.Password)
		if err != nil {
			return translate(err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return translate(err)
		}

		created, err = scanUser(tx.QueryRowContext(ctx, mysqlSelectByID, id))
		return translate(err)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *MySQLRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET email = ?, username = ?, first_name = ?, last_name = ?, password = ?
		 WHERE id = ?`

	var updated *models.User
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// RowsAffected is 0 for an unchanged row in MySQL, so existence is
		// decided by the re-select.
		if _, err := tx.ExecContext(ctx, query,
			user.Email, user.Username, user.FirstName, user.LastName, user.Password, user.ID); err != nil {
			return translate(err)
		}

		var err error
		updated, err = scanUser(tx.QueryRowContext(ctx, mysqlSelectByID, user.ID))
		return translate(err)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *MySQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, username, first_name, last_name, password FROM users
		 WHERE email = ?`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))

	return u, translate(err)
}

// FindConflict relies on the column collation, which is case-insensitive
// by default in MySQL. email_match is computed under the same collation.
func (r *MySQLRepository) FindConflict(ctx context.Context, email, username string, excludeID int64) (*Conflict, error) {
	query :=
		`SELECT id, email, username, first_name, last_name, password,
		        CASE WHEN email = ? THEN 1 ELSE 0 END AS email_match
		 FROM users
		 WHERE (email = ? OR username = ?) AND id <> ?
		 ORDER BY email_match DESC, id
		 LIMIT 1`

	c, err := scanConflict(r.db.QueryRowContext(ctx, query, email, email, username, excludeID))

	return c, translate(err)
}
