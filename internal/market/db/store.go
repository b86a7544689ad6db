// Package db implements the listing store on SQLite.
package db

import (
	"context"
	"database/sql"

	"github.com/akbarovz/gadgethub/internal/db"
	"github.com/akbarovz/gadgethub/internal/errorz"
	"github.com/akbarovz/gadgethub/internal/market"
)

// Store is responsible for persisting listings.
type Store struct {
	db *sql.DB
}

// New creates a new Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateListing creates a listing in the database.
// It updates the listing's ID field when successful.
func (s *Store) CreateListing(ctx context.Context, l *market.Listing) error {
	var q db.Query
	q.Unsafe(`INSERT INTO listings (user_id, title, description, price, listing_type, created_at) VALUES (`)
	q.Params(l.UserID, l.Title, l.Description, l.Price, string(l.Type), l.CreatedAt)
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

	l.ID = int(id)

	return nil
}

// Listings returns all listings joined with the owner's username,
// newest first.
func (s *Store) Listings(ctx context.Context) ([]market.Listing, error) {
	const query = `SELECT l.id, l.user_id, l.title, l.description, l.price, l.listing_type, l.created_at, u.username
FROM listings l
JOIN users u ON l.user_id = u.id
ORDER BY l.created_at DESC, l.id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errorz.MapDBErr(err)
	}

	defer rows.Close()

	out := make([]market.Listing, 0)
	for rows.Next() {
		var l market.Listing
		err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.Description, &l.Price, &l.Type, &l.CreatedAt, &l.Username)
		if err != nil {
			return nil, errorz.MapDBErr(err)
		}

		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, errorz.MapDBErr(err)
	}

	return out, nil
}

// DeleteListing deletes the listing with a single statement scoped to
// both the listing ID and the owner. Zero affected rows is not an error.
func (s *Store) DeleteListing(ctx context.Context, userID, listingID int) error {
	var q db.Query
	q.Unsafe(`DELETE FROM listings WHERE id = `)
	q.Param(listingID)
	q.Unsafe(` AND user_id = `)
	q.Param(userID)

	query, params := q.Get()

	_, err := s.db.ExecContext(ctx, query, params...)
	return errorz.MapDBErr(err)
}
