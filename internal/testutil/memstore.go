package testutil

import (
	"context"
	"sync"

	"github.com/quillpress/quillpress/internal/model"
	"github.com/quillpress/quillpress/internal/repository"
)

// MemStore is an in-memory store fake for service and handler tests. It
// satisfies service.PostStore and session.Store. Posts are cloned on the
// way in and out so callers always see a freshly loaded record, like
// they would from the database.
type MemStore struct {
	mu       sync.RWMutex
	posts    map[string]*model.Post
	order    []string // insertion order, newest listed first
	users    map[string]*model.User
	sessions map[string][]*model.Session

	// FailWith, when set, makes every store call return this error.
	FailWith error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		posts:    make(map[string]*model.Post),
		users:    make(map[string]*model.User),
		sessions: make(map[string][]*model.Session),
	}
}

func clonePost(p *model.Post) *model.Post {
	c := *p
	if p.Author != nil {
		a := *p.Author
		c.Author = &a
	}
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return &c
}

// CreatePost stores a copy of the post.
func (m *MemStore) CreatePost(_ context.Context, post *model.Post) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.posts[post.ID] = clonePost(post)
	m.order = append(m.order, post.ID)
	return nil
}

// GetPostByID returns a copy of the stored post.
func (m *MemStore) GetPostByID(_ context.Context, id string) (*model.Post, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return clonePost(post), nil
}

// ListPosts returns copies of posts matching the filter, newest first.
func (m *MemStore) ListPosts(_ context.Context, filter repository.PostFilter) ([]*model.Post, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var posts []*model.Post
	for i := len(m.order) - 1; i >= 0; i-- {
		post, ok := m.posts[m.order[i]]
		if !ok {
			continue // deleted
		}
		if filter.Published != nil && post.Published != *filter.Published {
			continue
		}
		if filter.AuthorEmail != "" && post.AuthorEmail() != filter.AuthorEmail {
			continue
		}
		posts = append(posts, clonePost(post))
	}
	return posts, nil
}

// PublishPost flips the published flag forward.
func (m *MemStore) PublishPost(_ context.Context, id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return repository.ErrPostNotFound
	}
	post.Published = true
	return nil
}

// DeletePost removes the post permanently.
func (m *MemStore) DeletePost(_ context.Context, id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(m.posts, id)
	return nil
}

// AddUser seeds a user record.
func (m *MemStore) AddUser(user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Email] = user
}

// GetUserByEmail returns a seeded user.
func (m *MemStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// AddSession seeds a session record.
func (m *MemStore) AddSession(session *model.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.TokenPrefix] = append(m.sessions[session.TokenPrefix], session)
}

// GetSessionsByPrefix returns seeded sessions sharing a token prefix.
func (m *MemStore) GetSessionsByPrefix(_ context.Context, prefix string) ([]*model.Session, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sessions[prefix], nil
}
