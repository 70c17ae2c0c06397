package application

import (
	"context"
	"fmt"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
)

// RenderedPost is the payload of the public post page.
type RenderedPost struct {
	Title string      `json:"title"`
	HTML  TrustedHTML `json:"html"`
}

// PostService serves the public read path.
type PostService struct {
	repo     domain.PostRepository
	markdown MarkdownRenderer
}

func NewPostService(repo domain.PostRepository, markdown MarkdownRenderer) *PostService {
	return &PostService{
		repo:     repo,
		markdown: markdown,
	}
}

// ListSummaries returns the posts shown on the public index
func (s *PostService) ListSummaries(ctx context.Context) ([]domain.PostSummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list posts: %w", err)
	}
	return summaries, nil
}

// RenderPost resolves slug to a post and renders its markdown.
func (s *PostService) RenderPost(ctx context.Context, slug string) (*RenderedPost, error) {
	if slug == "" {
		return nil, domain.ErrMissingParameter
	}

	post, err := s.repo.GetPost(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("could not load post %q: %w", slug, err)
	}
	if post == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, slug)
	}

	html, err := s.markdown.Render(post.Markdown)
	if err != nil {
		return nil, fmt.Errorf("could not render post %q: %w", slug, err)
	}

	return &RenderedPost{
		Title: post.Title,
		HTML:  html,
	}, nil
}
