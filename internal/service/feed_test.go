package service

import (
	"context"
	"testing"
	"time"

	"github.com/quillpress/quillpress/internal/metrics"
	"github.com/quillpress/quillpress/internal/model"
	"github.com/quillpress/quillpress/internal/testutil"
)

// fakeFeedCache is an in-memory stand-in for the Redis feed cache.
type fakeFeedCache struct {
	posts       []*model.Post
	populated   bool
	sets        int
	invalidates int
}

func (f *fakeFeedCache) GetPublicFeed(_ context.Context) ([]*model.Post, bool) {
	if !f.populated {
		return nil, false
	}
	return f.posts, true
}

func (f *fakeFeedCache) SetPublicFeed(_ context.Context, posts []*model.Post, _ time.Duration) error {
	f.posts = posts
	f.populated = true
	f.sets++
	return nil
}

func (f *fakeFeedCache) InvalidatePublicFeed(_ context.Context) error {
	f.posts = nil
	f.populated = false
	f.invalidates++
	return nil
}

func TestPublicFeed_CachesAssembledFeed(t *testing.T) {
	t.Parallel()

	store := testutil.NewMemStore()
	feedCache := &fakeFeedCache{}
	recorder := metrics.NewInMemory()
	svc := NewPostService(store, feedCache, recorder, time.Minute)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, alice, CreatePostInput{Title: "Cached"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if _, err := svc.PublishPost(ctx, alice, created.ID); err != nil {
		t.Fatalf("PublishPost failed: %v", err)
	}

	// First read misses and fills the cache.
	first, err := svc.PublicFeed(ctx)
	if err != nil {
		t.Fatalf("PublicFeed failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("feed length = %d, want 1", len(first))
	}
	if feedCache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", feedCache.sets)
	}

	// Second read is served from cache, even if the store breaks.
	store.FailWith = context.DeadlineExceeded
	second, err := svc.PublicFeed(ctx)
	if err != nil {
		t.Fatalf("cached PublicFeed failed: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("cached feed length = %d, want 1", len(second))
	}

	snap := recorder.Snapshot()
	if snap.FeedCacheMisses != 1 {
		t.Errorf("misses = %d, want 1", snap.FeedCacheMisses)
	}
	if snap.FeedCacheHits != 1 {
		t.Errorf("hits = %d, want 1", snap.FeedCacheHits)
	}
}

func TestPublicFeed_MutationsInvalidate(t *testing.T) {
	t.Parallel()

	store := testutil.NewMemStore()
	feedCache := &fakeFeedCache{}
	svc := NewPostService(store, feedCache, nil, time.Minute)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, alice, CreatePostInput{Title: "Fresh"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if _, err := svc.PublicFeed(ctx); err != nil {
		t.Fatalf("PublicFeed failed: %v", err)
	}
	if !feedCache.populated {
		t.Fatal("cache should be populated after a feed read")
	}

	// Publish drops the cached feed so the post appears immediately.
	if _, err := svc.PublishPost(ctx, alice, created.ID); err != nil {
		t.Fatalf("PublishPost failed: %v", err)
	}
	if feedCache.populated {
		t.Error("publish should invalidate the cached feed")
	}

	feed, err := svc.PublicFeed(ctx)
	if err != nil {
		t.Fatalf("PublicFeed failed: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("feed length = %d, want 1", len(feed))
	}

	// Delete drops it again so the post disappears immediately.
	if err := svc.DeletePost(ctx, alice, created.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if feedCache.populated {
		t.Error("delete should invalidate the cached feed")
	}
	if feedCache.invalidates != 2 {
		t.Errorf("invalidations = %d, want 2", feedCache.invalidates)
	}
}

func TestPublicFeed_NewestFirst(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		post, err := svc.CreatePost(ctx, alice, CreatePostInput{Title: title})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		if _, err := svc.PublishPost(ctx, alice, post.ID); err != nil {
			t.Fatalf("PublishPost failed: %v", err)
		}
		ids = append(ids, post.ID)
	}

	feed, err := svc.PublicFeed(ctx)
	if err != nil {
		t.Fatalf("PublicFeed failed: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("feed length = %d, want 3", len(feed))
	}
	for i := range feed {
		want := ids[len(ids)-1-i]
		if feed[i].ID != want {
			t.Errorf("feed[%d] = %s, want %s", i, feed[i].ID, want)
		}
	}
}

func TestDraftsFor_AnonymousEmpty(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreatePost(ctx, alice, CreatePostInput{Title: "Draft"}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	drafts, err := svc.DraftsFor(ctx, model.Anonymous)
	if err != nil {
		t.Fatalf("DraftsFor failed: %v", err)
	}
	if drafts == nil {
		t.Fatal("drafts should be an empty slice, not nil")
	}
	if len(drafts) != 0 {
		t.Errorf("anonymous drafts = %d, want 0", len(drafts))
	}
}

func TestDraftsFor_OwnDraftsOnly(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	aliceDraft, err := svc.CreatePost(ctx, alice, CreatePostInput{Title: "Alice draft"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if _, err := svc.CreatePost(ctx, bob, CreatePostInput{Title: "Bob draft"}); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	drafts, err := svc.DraftsFor(ctx, alice)
	if err != nil {
		t.Fatalf("DraftsFor failed: %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != aliceDraft.ID {
		t.Errorf("drafts = %v, want only alice's draft", drafts)
	}
}
