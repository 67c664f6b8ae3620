package session

import (
	"context"

	"github.com/quillpress/quillpress/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityContextKey is the context key for the resolved Identity.
const identityContextKey contextKey = "identity"

// ContextWithIdentity adds a resolved Identity to the context.
func ContextWithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the resolved Identity from the context.
// Returns model.Anonymous when no identity was resolved, so callers never
// need a presence check before evaluating policy.
func IdentityFromContext(ctx context.Context) model.Identity {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	if !ok {
		return model.Anonymous
	}
	return identity
}
