// Package session resolves opaque request credentials to caller
// identities. Resolution is a pure lookup: it never mutates state and
// never fails a request. Anything that does not verify cleanly - a
// missing cookie, a malformed token, an expired session, even a store
// outage - resolves to the anonymous identity.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/model"
)

// Store provides the session and user lookups the resolver needs.
// *repository.Repository satisfies it.
type Store interface {
	GetSessionsByPrefix(ctx context.Context, prefix string) ([]*model.Session, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// IdentityCache caches resolved identities keyed by credential hash.
// *cache.Cache satisfies it.
type IdentityCache interface {
	GetIdentity(ctx context.Context, cacheKey string) (model.Identity, bool)
	SetIdentity(ctx context.Context, cacheKey string, identity model.Identity, ttl time.Duration) error
}

// Resolver turns a request credential into an Identity.
type Resolver struct {
	store    Store
	cache    IdentityCache // may be nil; every read then hits the store
	logger   *slog.Logger
	cacheTTL time.Duration
}

// NewResolver creates a Resolver. Pass a nil cache to disable identity
// caching.
func NewResolver(store Store, cache IdentityCache, logger *slog.Logger, cacheTTL time.Duration) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Resolver{
		store:    store,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Resolve maps a credential to an Identity. It never returns an error:
// the result is either an authenticated identity or model.Anonymous.
func (r *Resolver) Resolve(ctx context.Context, credential string) model.Identity {
	if credential == "" {
		return model.Anonymous
	}

	parsed, err := auth.ParseSessionToken(credential)
	if err != nil {
		// Malformed credentials are anonymous, not an error.
		return model.Anonymous
	}

	cacheKey := auth.QuickHash(credential)
	if r.cache != nil {
		if identity, ok := r.cache.GetIdentity(ctx, cacheKey); ok {
			return identity
		}
	}

	sessions, err := r.store.GetSessionsByPrefix(ctx, parsed.Prefix)
	if err != nil {
		r.logger.Warn("session lookup failed",
			slog.String("error", err.Error()),
		)
		return model.Anonymous
	}

	// Verify against each candidate (handles prefix collisions).
	var matched *model.Session
	for _, s := range sessions {
		ok, err := auth.VerifyToken(credential, s.TokenHash)
		if err != nil {
			continue
		}
		if ok {
			matched = s
			break
		}
	}

	if matched == nil {
		return model.Anonymous
	}

	now := time.Now()
	if matched.Expired(now) {
		return model.Anonymous
	}

	user, err := r.store.GetUserByEmail(ctx, matched.UserEmail)
	if err != nil {
		// Session outlived its user; nothing to authenticate as.
		return model.Anonymous
	}

	identity := model.Identity{Email: user.Email, Name: user.Name}

	if r.cache != nil {
		ttl := r.cacheTTL
		if remaining := matched.ExpiresAt.Sub(now); remaining < ttl {
			ttl = remaining
		}
		_ = r.cache.SetIdentity(ctx, cacheKey, identity, ttl)
	}

	return identity
}
