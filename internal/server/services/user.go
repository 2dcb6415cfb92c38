// Package services contains server-side business logic. This file implements
// UserService: required-field and uniqueness validation, then create, update
// and lookup of user records.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/events"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/usersvc/internal/server/repositories/users"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	events      events.Publisher
	logger      logging.Logger
	now         func() time.Time
}

// NewUserService constructs a UserService. A nil publisher disables events.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, p events.Publisher, l logging.Logger) *UserService {
	if p == nil {
		p = events.NopPublisher{}
	}
	return &UserService{
		db:          db,
		repomanager: m,
		events:      p,
		logger:      l.With("module", "user_service"),
		now:         time.Now,
	}
}

// Create validates candidate and stores it. The stored user is returned
// without its password.
func (s *UserService) Create(ctx context.Context, candidate *models.User) (*models.PublicUser, error) {
	repo := s.repomanager.Users(s.db)

	if err := s.validate(ctx, repo, candidate, 0); err != nil {
		return nil, err
	}

	created, err := repo.Create(ctx, candidate)
	if err != nil {
		s.logWriteError(ctx, "create", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "user created", "id", created.ID, "username", created.Username)
	s.publish(ctx, events.TypeUserCreated, created)

	return created.Public(), nil
}

// Update replaces every field of user id with candidate. The candidate is
// validated like a new user, except that it may keep its own email and
// username.
func (s *UserService) Update(ctx context.Context, id int64, candidate *models.User) (*models.PublicUser, error) {
	repo := s.repomanager.Users(s.db)

	u := *candidate
	u.ID = id

	if err := s.validate(ctx, repo, &u, id); err != nil {
		return nil, err
	}

	updated, err := repo.Update(ctx, &u)
	if err != nil {
		s.logWriteError(ctx, "update", err)
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	s.logger.Info(ctx, "user updated", "id", updated.ID)
	s.publish(ctx, events.TypeUserUpdated, updated)

	return updated.Public(), nil
}

// Lookup returns the full record of the user with this email, password
// included.
func (s *UserService) Lookup(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, common.ErrorValidation
	}

	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

// validate checks required fields, then runs a single query for a user
// other than excludeID holding the same email or username. An email match
// is reported before a username match.
func (s *UserService) validate(ctx context.Context, repo users.Repository, candidate *models.User, excludeID int64) error {
	if candidate.MissingRequired() {
		return common.ErrorValidation
	}

	conflict, err := repo.FindConflict(ctx, candidate.Email, candidate.Username, excludeID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("uniqueness check: %w", err)
	}

	if conflict.EmailMatch {
		return common.ErrorEmailConflict
	}
	return common.ErrorUsernameConflict
}

// logWriteError logs a failed write. A unique violation means a concurrent
// request won the race after validation passed.
func (s *UserService) logWriteError(ctx context.Context, op string, err error) {
	if users.IsUniqueViolation(err) {
		s.logger.Warn(ctx, "concurrent write rejected by unique constraint", "op", op, "error", err)
		return
	}
	if errors.Is(err, common.ErrorNotFound) {
		return
	}
	s.logger.Error(ctx, "user write failed", "op", op, "error", err)
}

func (s *UserService) publish(ctx context.Context, eventType string, u *models.User) {
	if err := s.events.Publish(ctx, events.NewEvent(eventType, u, s.now())); err != nil {
		s.logger.Warn(ctx, "publish event failed", "type", eventType, "id", u.ID, "error", err)
	}
}
