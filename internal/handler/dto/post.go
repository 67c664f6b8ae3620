// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"bytes"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/quillpress/quillpress/internal/model"
)

// markdown renders post content for API responses. GFM covers tables and
// strikethrough, which authors use freely.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Published   bool      `json:"published"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostListResponse represents a list of posts.
type PostListResponse struct {
	Data []PostResponse `json:"data"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToPostResponse converts a Post model to a PostResponse DTO. Markdown
// content is rendered to HTML; if rendering fails the raw content still
// goes out and content_html stays empty.
func ToPostResponse(post *model.Post) *PostResponse {
	var rendered bytes.Buffer
	if post.Content != "" {
		_ = markdown.Convert([]byte(post.Content), &rendered)
	}

	return &PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		ContentHTML: rendered.String(),
		Tags:        post.Tags,
		Published:   post.Published,
		Author:      post.AuthorName(),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// ToPostListResponse converts a slice of Post models to PostListResponse.
func ToPostListResponse(posts []*model.Post) *PostListResponse {
	responses := make([]PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = *ToPostResponse(post)
	}
	return &PostListResponse{Data: responses}
}
