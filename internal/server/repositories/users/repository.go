// Package users stores user records in a relational database. PostgreSQL and
// MySQL implementations share the Repository contract.
package users

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository interface {
	// Create inserts u and returns the stored row with its assigned id.
	Create(ctx context.Context, u *models.User) (*models.User, error)
	// Update replaces all fields of the row with id u.ID. Returns
	// common.ErrorNotFound when there is no such row.
	Update(ctx context.Context, u *models.User) (*models.User, error)
	// GetByEmail returns the user with exactly this email or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// FindConflict returns a user, other than excludeID, whose email or
	// username equals the given ones under the column collation. A row
	// matching the email is preferred. Returns common.ErrorNotFound when
	// there is none.
	FindConflict(ctx context.Context, email, username string, excludeID int64) (*Conflict, error)
}

// Conflict is a stored user blocking a write. EmailMatch is decided by the
// database, so it follows the column collation rather than byte equality.
type Conflict struct {
	User       *models.User
	EmailMatch bool
}

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// IsUniqueViolation reports whether err comes from the database rejecting a
// write because of a unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// scanConflict reads the user columns followed by the email_match flag.
func scanConflict(row rowScanner) (*Conflict, error) {
	u := &models.User{}
	var emailMatch int
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.Password, &emailMatch); err != nil {
		return nil, err
	}
	return &Conflict{User: u, EmailMatch: emailMatch == 1}, nil
}
