package middleware

import (
	"context"
	"net/http"

	"github.com/mayankdobriyal1920/mini-insight-ops/internal/domain"
	"github.com/mayankdobriyal1920/mini-insight-ops/internal/usecase"
)

// SessionCookie is the cookie the session id travels in.
const SessionCookie = "io_session"

type contextKey struct{ name string }

var identityKey = &contextKey{"identity"}

// Session resolves the caller's identity from the session cookie and puts
// it into the request context. It never rejects: requests without a valid
// session simply proceed with no identity, and the service layer turns
// that into Unauthenticated where it matters.
func Session(auth *usecase.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				if user, err := auth.Resolve(r.Context(), cookie.Value); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), &user))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity stores the resolved caller in a context.
func WithIdentity(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// IdentityFrom returns the resolved caller, or nil when the request is
// unauthenticated.
func IdentityFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(identityKey).(*domain.User)
	return user
}
