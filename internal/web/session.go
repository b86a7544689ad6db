package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akbarovz/gadgethub/internal/web/sessions"
)

// Identity is the user a request is acting as, resolved from the session
// cookie once per request by the session middleware.
type Identity struct {
	UserID   int
	Username string
}

// sessionMiddleware loads the session, resolves the identity it carries
// (if any) and injects both into the request context. Handlers and views
// read the memoized values, nothing re-resolves the identity later in
// the request.
func sessionMiddleware(srv *Server) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := srv.deps.SessionStore.Get(r)
			if err != nil {
				srv.handleError(w, r, err)
				return
			}

			ctx := ctxWithSession(r.Context(), sess)

			if userID, ok := sess.UserID(); ok {
				ctx = ctxWithIdentity(ctx, Identity{
					UserID:   userID,
					Username: sess.Username(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type ctxKey string

const (
	sessionCtxKey  ctxKey = "_session"
	identityCtxKey ctxKey = "_identity"
)

func ctxWithSession(ctx context.Context, sess *sessions.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, sess)
}

func sessionFromCtx(ctx context.Context) (*sessions.Session, error) {
	sess, ok := ctx.Value(sessionCtxKey).(*sessions.Session)
	if !ok {
		return nil, fmt.Errorf("could not get session from context")
	}

	return sess, nil
}

func ctxWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey, id)
}

// IdentityFromContext returns the identity resolved for this request.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey).(Identity)
	return id, ok
}
