package web

import (
	"net/http"
)

// public registers a route anybody may use.
func (s *Server) public(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, handler)
}

// publicOnly registers a route that redirects authenticated users to
// their dashboard. Used for the register and login pages.
func (s *Server) publicOnly(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); ok {
			s.redirect(w, r, "/dashboard")
			return
		}

		handler.ServeHTTP(w, r)
	}))
}

// loggedIn registers a route that requires an authenticated identity.
// This is the single enforcement point for "must be logged in": when no
// identity is resolved the wrapped handler is never invoked and the
// browser is sent to the login page with a warning.
func (s *Server) loggedIn(pattern string, handler http.Handler) {
	s.mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			s.flashAndRedirect(w, r, "warning", "Please log in first.", "/login")
			return
		}

		handler.ServeHTTP(w, r)
	}))
}
