package domain

import (
	"context"
	"time"
)

// NewPostSlug is the route parameter that selects an empty admin form instead of an existing post.
const NewPostSlug = "new"

// Post represents a blog post
// The slug is the URL-facing key and identifies at most one post at a time.
type Post struct {
	Slug      string
	Title     string
	Markdown  string
	UpdatedAt time.Time
	CreatedAt time.Time
}

// PostSummary is the projection used by listing views.
type PostSummary struct {
	Slug  string
	Title string
}

type PostRepository interface {
	ListSummaries(ctx context.Context) ([]PostSummary, error)
	ListPosts(ctx context.Context) ([]*Post, error)

	// GetPost returns nil, nil when no post has the given slug
	GetPost(ctx context.Context, slug string) (*Post, error)

	CreatePost(ctx context.Context, p *Post) error
	// UpdatePost replaces every field of the post stored under slug, including the slug itself
	UpdatePost(ctx context.Context, slug string, p *Post) error
	DeletePost(ctx context.Context, slug string) error
}
