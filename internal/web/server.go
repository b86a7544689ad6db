// Package web provides the HTTP surface of the application.
package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/schema"

	"github.com/akbarovz/gadgethub/internal/auth"
	"github.com/akbarovz/gadgethub/internal/contact"
	"github.com/akbarovz/gadgethub/internal/errorz"
	"github.com/akbarovz/gadgethub/internal/krypto"
	"github.com/akbarovz/gadgethub/internal/market"
	"github.com/akbarovz/gadgethub/internal/todo"
	"github.com/akbarovz/gadgethub/internal/web/sessions"
)

const (
	csrfTokenCookieName = "gh-csrf"
	csrfTokenField      = "gorilla.csrf.Token"
)

// ViewRenderer renders named views with the given data.
type ViewRenderer interface {
	Render(w io.Writer, name string, data any) error
}

// ServerDeps are the dependencies for the server.
type ServerDeps struct {
	Logger         *slog.Logger
	ViewRenderer   ViewRenderer
	AuthService    *auth.Service
	TaskService    *todo.Service
	MarketService  *market.Service
	ContactService *contact.Service
	SessionStore   *sessions.Store
	DistFS         http.FileSystem
}

// ServerConfig is the configuration for the server.
type ServerConfig struct {
	CSRFKey      krypto.Key
	SecureCookie bool
}

type Server struct {
	deps    *ServerDeps
	mux     *http.ServeMux
	decoder *schema.Decoder
	handler http.Handler
}

func NewServer(deps *ServerDeps, cfg ServerConfig) *Server {
	s := &Server{
		deps:    deps,
		mux:     http.NewServeMux(),
		decoder: schema.NewDecoder(),
	}

	s.decoder.IgnoreUnknownKeys(true)

	// Marketing pages.
	s.public("GET /{$}", s.home())
	s.public("GET /about", s.staticHandler("about"))
	s.public("GET /pricing", s.pricing())
	s.public("GET /contact", s.staticHandler("contact"))
	s.public("POST /contact", s.postContact())

	// Account endpoints. Register and login redirect to the dashboard
	// when the visitor is already authenticated.
	s.publicOnly("GET /register", s.staticHandler("register"))
	s.publicOnly("POST /register", s.postRegister())
	s.publicOnly("GET /login", s.staticHandler("login"))
	s.publicOnly("POST /login", s.postLogin())
	s.public("GET /logout", s.getLogout())

	// Dashboard and task endpoints.
	s.loggedIn("GET /dashboard", s.dashboard())
	s.loggedIn("POST /task/add", s.addTask())
	s.loggedIn("POST /task/toggle/{id}", s.toggleTask())
	s.loggedIn("POST /task/delete/{id}", s.deleteTask())

	// Marketplace endpoints.
	s.loggedIn("GET /marketplace", s.marketplace())
	s.loggedIn("POST /marketplace", s.postListing())
	s.loggedIn("POST /marketplace/delete/{id}", s.deleteListing())

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(deps.DistFS)))

	// Wrap the mux with the global middlewares.
	csrfMW := csrf.Protect(
		cfg.CSRFKey.SecretValue(),
		csrf.CookieName(csrfTokenCookieName),
		csrf.FieldName(csrfTokenField),
		csrf.Secure(cfg.SecureCookie),
	)

	middlewares := []func(http.Handler) http.Handler{
		requestLogger(deps.Logger),
		csrfMW,
		sessionMiddleware(s),
	}
	s.handler = s.mux
	for i := len(middlewares) - 1; i >= 0; i-- {
		s.handler = middlewares[i](s.handler)
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// staticHandler renders the named view without any view-specific data.
func (s *Server) staticHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.writeView(w, r, name, nil)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
	})
}

// redirect sends the browser to target after a state-changing request.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// flash queues a notice on the session and persists it immediately.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, kind, text string) error {
	sess, err := sessionFromCtx(r.Context())
	if err != nil {
		return err
	}

	sess.AddFlash(kind, text)
	return s.deps.SessionStore.Save(r, w, sess)
}

// flashAndRedirect is the common tail of the POST handlers.
func (s *Server) flashAndRedirect(w http.ResponseWriter, r *http.Request, kind, text, target string) {
	if err := s.flash(w, r, kind, text); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.redirect(w, r, target)
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errorz.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	var invalidInput errorz.InvalidInput
	if errors.As(err, &invalidInput) {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	s.deps.Logger.Error("internal server error", "url", r.URL.String(), "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
