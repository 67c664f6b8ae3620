package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quillpress/quillpress/internal/model"
)

const (
	// identityCachePrefix is the Redis key prefix for resolved identities.
	identityCachePrefix = "session:identity:"
	// DefaultIdentityTTL is the fallback TTL for cached identities.
	DefaultIdentityTTL = 5 * time.Minute
)

// cachedIdentity represents a resolved identity stored in Redis.
type cachedIdentity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GetIdentity retrieves a cached identity by credential cache key.
// Returns (Anonymous, false) on a miss; a corrupted entry is a miss.
func (c *Cache) GetIdentity(ctx context.Context, cacheKey string) (model.Identity, bool) {
	key := identityCachePrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return model.Anonymous, false
	}

	var cached cachedIdentity
	if err := json.Unmarshal(data, &cached); err != nil {
		return model.Anonymous, false
	}

	return model.Identity{Email: cached.Email, Name: cached.Name}, true
}

// SetIdentity caches a resolved identity for the given credential cache
// key. The TTL must never exceed the remaining session lifetime.
func (c *Cache) SetIdentity(ctx context.Context, cacheKey string, identity model.Identity, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultIdentityTTL
	}

	key := identityCachePrefix + cacheKey

	data, err := json.Marshal(cachedIdentity{
		Email: identity.Email,
		Name:  identity.Name,
	})
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}
