package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quillpress/quillpress/internal/model"
)

const (
	// feedCacheKey holds the serialized public feed.
	feedCacheKey = "feed:public"

	// DefaultFeedTTL bounds staleness of the public feed. Publish and
	// delete invalidate eagerly, so the TTL only covers writes that
	// bypass this process.
	DefaultFeedTTL = 60 * time.Second
)

// GetPublicFeed retrieves the cached public feed.
// Returns (nil, false) on a miss; a corrupted entry is a miss.
func (c *Cache) GetPublicFeed(ctx context.Context) ([]*model.Post, bool) {
	data, err := c.client.Get(ctx, feedCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var posts []*model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, false
	}

	return posts, true
}

// SetPublicFeed caches the public feed with the given TTL.
func (c *Cache) SetPublicFeed(ctx context.Context, posts []*model.Post, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultFeedTTL
	}

	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, feedCacheKey, data, ttl).Err()
}

// InvalidatePublicFeed drops the cached feed so the next read rebuilds it
// from the store. Called after every publish and delete.
func (c *Cache) InvalidatePublicFeed(ctx context.Context) error {
	return c.client.Del(ctx, feedCacheKey).Err()
}
