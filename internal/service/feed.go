package service

import (
	"context"
	"time"

	"github.com/quillpress/quillpress/internal/model"
	"github.com/quillpress/quillpress/internal/repository"
)

// PublicFeed returns every published post, newest first. The feed is
// served from cache when fresh and rebuilt from the store otherwise;
// publish and delete invalidate it eagerly, the TTL bounds staleness for
// everything else.
func (s *PostService) PublicFeed(ctx context.Context) ([]*model.Post, error) {
	if s.cache != nil {
		if posts, ok := s.cache.GetPublicFeed(ctx); ok {
			s.metrics.IncFeedCacheHit()
			return posts, nil
		}
		s.metrics.IncFeedCacheMiss()
	}

	start := time.Now()

	published := true
	posts, err := s.store.ListPosts(ctx, repository.PostFilter{Published: &published})
	if err != nil {
		return nil, s.storeErr("list published posts", err)
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	s.metrics.ObserveFeedAssembly(time.Since(start))

	if s.cache != nil {
		_ = s.cache.SetPublicFeed(ctx, posts, s.feedTTL)
	}

	return posts, nil
}

// DraftsFor returns the caller's own unpublished posts. Fails closed to
// an empty list for anonymous callers - never an error, never someone
// else's drafts.
func (s *PostService) DraftsFor(ctx context.Context, viewer model.Identity) ([]*model.Post, error) {
	if viewer.IsAnonymous() {
		return []*model.Post{}, nil
	}

	published := false
	posts, err := s.store.ListPosts(ctx, repository.PostFilter{
		Published:   &published,
		AuthorEmail: viewer.Email,
	})
	if err != nil {
		return nil, s.storeErr("list drafts", err)
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	return posts, nil
}
