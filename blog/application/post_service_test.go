package application

import (
	"context"
	"errors"
	"testing"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
)

func TestPostService_RenderPost(t *testing.T) {
	repo := newFakePostRepository(domain.Post{Slug: "hello", Title: "Hello", Markdown: "# Hi"})
	service := NewPostService(repo, NewMarkdownRenderer("/posts"))

	rendered, err := service.RenderPost(context.Background(), "hello")
	if err != nil {
		t.Fatalf("RenderPost() error = %v", err)
	}

	if rendered.Title != "Hello" {
		t.Errorf("Title = %q, want %q", rendered.Title, "Hello")
	}
	if want := TrustedHTML("<h1 id=\"hi\">Hi</h1>\n"); rendered.HTML != want {
		t.Errorf("HTML = %q, want %q", rendered.HTML, want)
	}
}

func TestPostService_RenderPost_Errors(t *testing.T) {
	errStorage := errors.New("disk on fire")

	tests := []struct {
		name    string
		slug    string
		repoErr error
		wantErr error
	}{
		{
			name:    "missing slug",
			slug:    "",
			wantErr: domain.ErrMissingParameter,
		},
		{
			name:    "unknown slug",
			slug:    "nope",
			wantErr: domain.ErrPostNotFound,
		},
		{
			name:    "storage failure",
			slug:    "hello",
			repoErr: errStorage,
			wantErr: errStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePostRepository(domain.Post{Slug: "hello", Title: "Hello", Markdown: "# Hi"})
			repo.err = tt.repoErr
			service := NewPostService(repo, NewMarkdownRenderer("/posts"))

			_, err := service.RenderPost(context.Background(), tt.slug)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RenderPost(%q) error = %v, want %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestPostService_RenderPost_RendererFailure(t *testing.T) {
	repo := newFakePostRepository(domain.Post{Slug: "hello", Title: "Hello", Markdown: "# Hi"})
	service := NewPostService(repo, failingRenderer{})

	if _, err := service.RenderPost(context.Background(), "hello"); err == nil {
		t.Fatal("RenderPost() should surface renderer failures")
	}
}

func TestPostService_MissingSlugSkipsRepository(t *testing.T) {
	repo := newFakePostRepository()
	service := NewPostService(repo, NewMarkdownRenderer("/posts"))

	_, _ = service.RenderPost(context.Background(), "")
	if repo.totalCalls() != 0 {
		t.Errorf("repository calls = %d, want 0", repo.totalCalls())
	}
}

func TestPostService_ListSummaries(t *testing.T) {
	repo := newFakePostRepository(
		domain.Post{Slug: "b", Title: "B"},
		domain.Post{Slug: "a", Title: "A"},
	)
	service := NewPostService(repo, NewMarkdownRenderer("/posts"))

	summaries, err := service.ListSummaries(context.Background())
	if err != nil {
		t.Fatalf("ListSummaries() error = %v", err)
	}
	if len(summaries) != 2 || summaries[0].Slug != "a" || summaries[1].Title != "B" {
		t.Errorf("ListSummaries() = %+v", summaries)
	}
}
