package auth

import (
	"context"

	"github.com/akbarovz/gadgethub/internal/email"
)

// UserFilter is used to filter users.
// Returned users must match all the provided fields.
// If a field is empty or nil, it's ignored.
type UserFilter struct {
	IDs    []int
	Emails []email.Address
}

// Store provides access to the user store.
type Store interface {
	// CreateUser creates a user. It relies on the store's uniqueness
	// constraints to reject duplicate usernames or emails, there is
	// deliberately no look-before-insert.
	CreateUser(ctx context.Context, u *User) error
	// FindUsers queries for users based on the provided filter.
	// It returns an empty slice if no users are found.
	FindUsers(ctx context.Context, filter *UserFilter) ([]User, error)
}
