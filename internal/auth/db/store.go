// Package db implements the auth store on SQLite.
package db

import (
	"context"
	"database/sql"

	"github.com/akbarovz/gadgethub/internal/auth"
)

// Store is responsible for persisting users.
type Store struct {
	db *sql.DB
}

// New creates a new Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateUser creates a user in the database.
// It updates the user's ID field when successful.
// It returns errorz.ErrConstraintViolated when the username or email
// is already taken.
func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	return insertUser(ctx, s.db, u)
}

// FindUsers queries for users based on the provided filter.
// It returns an empty slice if no users are found.
func (s *Store) FindUsers(ctx context.Context, filter *auth.UserFilter) ([]auth.User, error) {
	return selectUsers(ctx, s.db, filter)
}
