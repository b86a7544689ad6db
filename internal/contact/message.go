// Package contact persists contact form submissions.
package contact

import (
	"time"

	"github.com/akbarovz/gadgethub/internal/email"
)

// Message is a contact form submission. Messages have no owner, require
// no authentication to create and are never read back through the UI.
type Message struct {
	ID        int
	Name      string
	Email     email.Address
	Body      string
	CreatedAt time.Time
}
