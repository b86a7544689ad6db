package auth

import (
	"time"

	"github.com/akbarovz/gadgethub/internal/email"
	"github.com/akbarovz/gadgethub/internal/krypto"
)

// User contains the data for a user. Users are created at registration
// and never mutated or deleted afterwards.
type User struct {
	ID           int
	Username     string
	Email        email.Address
	PasswordHash krypto.Argon2Hash
	CreatedAt    time.Time
}
