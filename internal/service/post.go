// Package service provides business logic for the application: the post
// lifecycle operations and the feed assembler. Every operation takes the
// caller's identity as an explicit value and re-checks authorization
// against a freshly loaded post - whatever a client rendered is advisory.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/quillpress/quillpress/internal/metrics"
	"github.com/quillpress/quillpress/internal/model"
	"github.com/quillpress/quillpress/internal/policy"
	"github.com/quillpress/quillpress/internal/repository"
)

// Service errors. Every failure is a per-request outcome; nothing here is
// fatal to the process and nothing is retried.
var (
	// ErrPostNotFound: the id does not resolve in the store.
	ErrPostNotFound = errors.New("post not found")
	// ErrForbidden: the authorization predicate is false. No mutation happened.
	ErrForbidden = errors.New("forbidden")
	// ErrNotAuthenticated: the operation requires an authenticated caller.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrTitleRequired: create rejected before touching the store.
	ErrTitleRequired = errors.New("title is required")
	// ErrStoreUnavailable: the store round-trip itself failed.
	ErrStoreUnavailable = errors.New("post store unavailable")
)

// PostStore is the persistence collaborator. *repository.Repository
// satisfies it; tests use an in-memory fake.
type PostStore interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context, filter repository.PostFilter) ([]*model.Post, error)
	PublishPost(ctx context.Context, id string) error
	DeletePost(ctx context.Context, id string) error
}

// FeedCache caches the assembled public feed. *cache.Cache satisfies it.
type FeedCache interface {
	GetPublicFeed(ctx context.Context) ([]*model.Post, bool)
	SetPublicFeed(ctx context.Context, posts []*model.Post, ttl time.Duration) error
	InvalidatePublicFeed(ctx context.Context) error
}

// PostService handles post lifecycle and feed business logic.
type PostService struct {
	store   PostStore
	cache   FeedCache // may be nil; the feed is then assembled per request
	metrics metrics.Recorder
	feedTTL time.Duration
}

// NewPostService creates a new PostService.
func NewPostService(store PostStore, cache FeedCache, recorder metrics.Recorder, feedTTL time.Duration) *PostService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if feedTTL <= 0 {
		feedTTL = 60 * time.Second
	}
	return &PostService{
		store:   store,
		cache:   cache,
		metrics: recorder,
		feedTTL: feedTTL,
	}
}

// CreatePostInput defines input for creating a post.
type CreatePostInput struct {
	Title   string
	Content string
	Tags    []string
}

// CreatePost creates a new draft owned by the caller. Posts are always
// born unpublished.
func (s *PostService) CreatePost(ctx context.Context, actor model.Identity, input CreatePostInput) (*model.Post, error) {
	if !policy.CanCreate(actor) {
		return nil, ErrNotAuthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	now := time.Now().UTC()
	post := &model.Post{
		ID:        ulid.Make().String(),
		Title:     title,
		Content:   input.Content,
		Tags:      input.Tags,
		Published: false,
		Author:    &model.Author{Name: actor.Name, Email: actor.Email},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, s.storeErr("create post", err)
	}

	s.metrics.IncPostCreated()

	return post, nil
}

// PublishPost moves a draft to the published state. Existence is checked
// before authorization, against the freshly loaded record; the two
// failures stay distinct error kinds. Publishing anything but an owned
// draft is ErrForbidden - including a retry after a successful publish.
func (s *PostService) PublishPost(ctx context.Context, actor model.Identity, id string) (*model.Post, error) {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("load post", err)
	}

	if !policy.CanPublish(actor, post) {
		return nil, ErrForbidden
	}

	if err := s.store.PublishPost(ctx, post.ID); err != nil {
		return nil, s.storeErr("publish post", err)
	}

	post.Published = true
	post.UpdatedAt = time.Now().UTC()

	s.invalidateFeed(ctx)
	s.metrics.IncPostPublished()

	return post, nil
}

// DeletePost removes a post permanently. Allowed from both live states,
// owner only. The deleted state is terminal: the row is gone.
func (s *PostService) DeletePost(ctx context.Context, actor model.Identity, id string) error {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return s.storeErr("load post", err)
	}

	if !policy.CanDelete(actor, post) {
		return ErrForbidden
	}

	if err := s.store.DeletePost(ctx, post.ID); err != nil {
		return s.storeErr("delete post", err)
	}

	s.invalidateFeed(ctx)
	s.metrics.IncPostDeleted()

	return nil
}

// GetPost retrieves a single post, applying the read predicate.
// Published posts are visible to everyone; drafts only to their owner.
func (s *PostService) GetPost(ctx context.Context, viewer model.Identity, id string) (*model.Post, error) {
	post, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, s.storeErr("load post", err)
	}

	if !policy.CanRead(viewer, post) {
		return nil, ErrForbidden
	}

	return post, nil
}

// invalidateFeed drops the cached public feed after a mutation.
func (s *PostService) invalidateFeed(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidatePublicFeed(ctx)
}

// storeErr maps repository errors to service errors.
func (s *PostService) storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return fmt.Errorf("%w: %s: %s", ErrStoreUnavailable, op, err)
}
