package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/akbarovz/gadgethub/internal"
	"github.com/akbarovz/gadgethub/internal/web/sessions"
)

// viewData is the envelope passed to every rendered view.
type viewData struct {
	Version    string
	CSRFToken  string
	IsLoggedIn bool
	Username   string
	Flashes    []sessions.Flash
	Data       any
}

// writeView renders the named view wrapped in the common view data.
// Consuming the flashes modifies the session, so the session is saved
// before the body is written.
func (s *Server) writeView(w http.ResponseWriter, r *http.Request, name string, data any) error {
	sess, err := sessionFromCtx(r.Context())
	if err != nil {
		return err
	}

	id, loggedIn := IdentityFromContext(r.Context())

	vd := &viewData{
		Version:    internal.BuildRevision,
		CSRFToken:  csrf.Token(r),
		IsLoggedIn: loggedIn,
		Username:   id.Username,
		Flashes:    sess.ConsumeFlashes(),
		Data:       data,
	}

	if sess.NeedsSave() {
		err = s.deps.SessionStore.Save(r, w, sess)
		if err != nil {
			return err
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.deps.ViewRenderer.Render(w, name, vd)
}
