package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/quillpress/quillpress/internal/model"
	"github.com/quillpress/quillpress/internal/session"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "quillpress_session"

// IdentityResolver resolves a session credential to an identity.
// *session.Resolver satisfies it.
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) model.Identity
}

// Identity returns a middleware that resolves the caller's identity from
// the session cookie or the Authorization header and injects it into the
// request context. It never rejects a request: requests without a valid
// credential proceed as anonymous, and each handler decides what the
// anonymous caller may do.
func Identity(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := extractCredential(r)
			identity := resolver.Resolve(r.Context(), credential)

			ctx := session.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractCredential pulls the session token from the request. The cookie
// wins over the Authorization header when both are present.
func extractCredential(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
