package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/quillpress/quillpress/internal/model"
)

// Common errors for post repository operations.
var (
	// ErrPostNotFound is returned when an id does not resolve to a live
	// post. Deleted posts are gone for good and yield the same error.
	ErrPostNotFound = errors.New("post not found")
)

// PostFilter defines filters for listing posts.
type PostFilter struct {
	// Published filters on the published flag when non-nil.
	Published *bool
	// AuthorEmail restricts results to posts owned by this email when set.
	AuthorEmail string
}

const postColumns = `
	p.id, p.title, p.content, p.tags, p.published,
	p.author_email, u.name,
	p.created_at, p.updated_at
`

// CreatePost inserts a new post into the database. Posts are born drafts;
// the caller sets Published only through PublishPost.
func (r *Repository) CreatePost(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, title, content, tags, published, author_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var authorEmail *string
	if post.Author != nil {
		authorEmail = &post.Author.Email
	}

	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		pq.Array(post.Tags),
		post.Published,
		authorEmail,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPostByID retrieves a post by its ID, with the author display name
// joined in. A missing author leaves Post.Author nil.
func (r *Repository) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		LEFT JOIN users u ON u.email = p.author_email
		WHERE p.id = $1
	`

	post, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return post, nil
}

// ListPosts retrieves posts matching the filter, newest first.
func (r *Repository) ListPosts(ctx context.Context, filter PostFilter) ([]*model.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		LEFT JOIN users u ON u.email = p.author_email
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if filter.Published != nil {
		query += fmt.Sprintf(" AND p.published = $%d", argIndex)
		args = append(args, *filter.Published)
		argIndex++
	}

	if filter.AuthorEmail != "" {
		query += fmt.Sprintf(" AND p.author_email = $%d", argIndex)
		args = append(args, filter.AuthorEmail)
		argIndex++
	}

	query += " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// PublishPost flips the published flag forward. The flag is monotonic:
// there is no SQL path anywhere that sets it back to false.
func (r *Repository) PublishPost(ctx context.Context, id string) error {
	query := `
		UPDATE posts
		SET published = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// DeletePost removes a post permanently. Deleted posts are irrecoverable
// and absent from every subsequent query.
func (r *Repository) DeletePost(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

// scanPost scans a single row into a Post model.
func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		post        model.Post
		tags        []string
		authorEmail *string
		authorName  *string
	)

	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		pq.Array(&tags),
		&post.Published,
		&authorEmail,
		&authorName,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.Tags = tags

	if authorEmail != nil {
		author := &model.Author{Email: *authorEmail}
		if authorName != nil {
			author.Name = *authorName
		}
		post.Author = author
	}

	return &post, nil
}
