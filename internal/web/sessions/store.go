package sessions

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/akbarovz/gadgethub/internal/krypto"
)

const CookieName = "gh-session"

type Store struct {
	store sessions.Store
}

// NewCookieStore creates a session store backed by a signed and encrypted
// cookie. The keys are expected to be freshly generated at process start,
// so a restart invalidates all sessions.
func NewCookieStore(authKey, encKey krypto.Key, secure bool) *Store {
	base := sessions.NewCookieStore(authKey.SecretValue(), encKey.SecretValue())
	base.Options.HttpOnly = true
	base.Options.Secure = secure
	base.Options.SameSite = http.SameSiteLaxMode
	base.Options.Path = "/"

	return &Store{store: base}
}

// NewStore wraps an existing gorilla session store.
func NewStore(store sessions.Store) *Store {
	return &Store{store: store}
}

func (s *Store) Get(r *http.Request) (*Session, error) {
	base, err := s.store.Get(r, CookieName)
	if err != nil {
		// A cookie that fails to decode is expected after a restart,
		// because the keys are per-process. Gorilla still hands us a
		// fresh session in that case, use it.
		if base == nil {
			return nil, err
		}
		base.IsNew = true
	}

	return &Session{base: base}, nil
}

func (s *Store) Save(r *http.Request, w http.ResponseWriter, sess *Session) error {
	err := s.store.Save(r, w, sess.base)
	if err != nil {
		return err
	}

	sess.needsSave = false
	return nil
}
