// Package db implements the message store on SQLite.
package db

import (
	"context"
	"database/sql"

	"github.com/akbarovz/gadgethub/internal/contact"
	"github.com/akbarovz/gadgethub/internal/db"
	"github.com/akbarovz/gadgethub/internal/errorz"
)

// Store is responsible for persisting contact messages.
type Store struct {
	db *sql.DB
}

// New creates a new Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateMessage creates a message in the database.
// It updates the message's ID field when successful.
func (s *Store) CreateMessage(ctx context.Context, m *contact.Message) error {
	var q db.Query
	q.Unsafe(`INSERT INTO messages (name, email, message, created_at) VALUES (`)
	q.Params(m.Name, string(m.Email), m.Body, m.CreatedAt)
	q.Unsafe(`)`)

	query, params := q.Get()

	result, err := s.db.ExecContext(ctx, query, params...)
	if err != nil {
		return errorz.MapDBErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errorz.MapDBErr(err)
	}

	m.ID = int(id)

	return nil
}
