package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/akbarovz/gadgethub/internal/email"
	"github.com/akbarovz/gadgethub/internal/errorz"
)

var errRequired = errors.New("is required")

// Store provides access to the message store.
type Store interface {
	CreateMessage(ctx context.Context, m *Message) error
}

// NewMessage is the input for submitting a contact form.
type NewMessage struct {
	Name    string
	Email   string
	Message string
}

// Service provides the rules for the contact form.
type Service struct {
	store Store

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

func NewService(s Store) *Service {
	return &Service{
		store:   s,
		NowFunc: time.Now,
	}
}

// Submit validates the input and persists the message.
func (s *Service) Submit(ctx context.Context, in NewMessage) (Message, error) {
	name := strings.TrimSpace(in.Name)
	body := strings.TrimSpace(in.Message)

	var invalid errorz.InvalidInput

	if name == "" {
		invalid = append(invalid, errorz.Keyed{Key: "Name", Err: errRequired})
	}

	addr, err := email.ParseAddress(in.Email)
	if err != nil {
		invalid = append(invalid, errorz.Keyed{Key: "Email", Err: err})
	}

	if body == "" {
		invalid = append(invalid, errorz.Keyed{Key: "Message", Err: errRequired})
	}

	if len(invalid) > 0 {
		return Message{}, invalid
	}

	msg := Message{
		Name:      name,
		Email:     addr,
		Body:      body,
		CreatedAt: s.NowFunc(),
	}

	err = s.store.CreateMessage(ctx, &msg)
	if err != nil {
		return Message{}, err
	}

	return msg, nil
}
