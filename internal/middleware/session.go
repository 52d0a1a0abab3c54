package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/trip-itinerary/internal/domain"
)

// SessionCookie is the name of the cookie holding the opaque session id.
const SessionCookie = "session"

type sessionKey struct{}

// SessionResolver looks a session up by id. An unknown or expired id yields
// the zero Session and a nil error.
type SessionResolver interface {
	Current(ctx context.Context, id uuid.UUID) (domain.Session, error)
}

// NewSessionLoader resolves the session cookie once per request and stores the
// result in the request context. Requests without a usable cookie carry the
// zero Session. A store failure is logged and the request continues anonymously.
func NewSessionLoader(resolver SessionResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess domain.Session
			if c, err := r.Cookie(SessionCookie); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					sess, err = resolver.Current(r.Context(), id)
					if err != nil {
						log.WarnContext(r.Context(), "session lookup failed", "error", err)
						sess = domain.Session{}
					}
				}
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom returns the session stored by NewSessionLoader, or the zero
// Session when there is none.
func SessionFrom(ctx context.Context) domain.Session {
	sess, _ := ctx.Value(sessionKey{}).(domain.Session)
	return sess
}
