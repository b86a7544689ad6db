// Package sessions wraps gorilla/sessions with the operations this app
// needs: the authenticated identity and flash notices.
package sessions

import (
	"encoding/gob"

	"github.com/gorilla/sessions"
)

const (
	userIDKey   = "userID"
	usernameKey = "username"
)

// Flash is a one-time notice shown on the next rendered page.
type Flash struct {
	Kind string // success, info, warning or danger
	Text string
}

func init() {
	// Flashes are stored in the session cookie, which is gob encoded.
	gob.Register(Flash{})
}

type Session struct {
	base      *sessions.Session
	needsSave bool
}

// NeedsSave reports whether the session was modified since it was loaded
// or last saved.
func (s *Session) NeedsSave() bool {
	return s.needsSave
}

// UserID returns the identity established by a previous login, if any.
func (s *Session) UserID() (int, bool) {
	userID, ok := s.base.Values[userIDKey].(int)
	return userID, ok
}

// Username returns the username stored alongside the identity.
func (s *Session) Username() string {
	username, _ := s.base.Values[usernameKey].(string)
	return username
}

// SetIdentity establishes the identity for this browser session.
func (s *Session) SetIdentity(userID int, username string) {
	s.needsSave = true
	s.base.Values[userIDKey] = userID
	s.base.Values[usernameKey] = username
}

// DeleteIdentity clears the identity (logout).
func (s *Session) DeleteIdentity() {
	s.needsSave = true
	delete(s.base.Values, userIDKey)
	delete(s.base.Values, usernameKey)
}

// AddFlash queues a notice for the next rendered page.
func (s *Session) AddFlash(kind, text string) {
	s.needsSave = true
	s.base.AddFlash(Flash{Kind: kind, Text: text})
}

// ConsumeFlashes returns the queued notices and removes them from the
// session.
func (s *Session) ConsumeFlashes() []Flash {
	raw := s.base.Flashes()
	if len(raw) > 0 {
		s.needsSave = true
	}

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}

	return flashes
}
