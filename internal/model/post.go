// Package model defines domain entities for the application.
package model

import "time"

// PostState represents the lifecycle state of a post.
type PostState string

const (
	PostStateDraft     PostState = "draft"
	PostStatePublished PostState = "published"
	// PostStateDeleted is terminal. A deleted post has no row in the
	// store, so this state only appears in transition results.
	PostStateDeleted PostState = "deleted"
)

// UnknownAuthor is the display name used when a post's author no longer
// resolves to a user record.
const UnknownAuthor = "Unknown author"

// Author identifies the owner of a post.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post represents a blog post entity.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"` // markdown body, may be empty
	Tags      []string  `json:"tags,omitempty"`
	Published bool      `json:"published"`
	Author    *Author   `json:"author,omitempty"` // nil when the owner record is gone
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State computes the lifecycle state of a live post record.
func (p *Post) State() PostState {
	if p.Published {
		return PostStatePublished
	}
	return PostStateDraft
}

// AuthorName returns the display name of the post's author, falling back
// to UnknownAuthor when the owner record is missing.
func (p *Post) AuthorName() string {
	if p.Author == nil || p.Author.Name == "" {
		return UnknownAuthor
	}
	return p.Author.Name
}

// AuthorEmail returns the owner's email, or "" when the owner record is
// missing. Ownership checks must fail closed on "".
func (p *Post) AuthorEmail() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Email
}
