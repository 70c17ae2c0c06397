package application

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/dfryer1193/onewheel-blog/shared/source"
)

func runDirect(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestImporter_Import(t *testing.T) {
	fsys := fstest.MapFS{
		"first-post.md": {Data: []byte("---\ntitle: First Post\nslug: first\n---\n# First\n\nBody\n")},
		"second.md":     {Data: []byte("# Second heading\n\ntext\n")},
	}
	repo := newFakePostRepository(domain.Post{Slug: "first", Title: "Old", Markdown: "old"})
	importer := NewImporter(repo, source.NewFSSource(fsys), runDirect)

	result, err := importer.Import(context.Background())
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if result.Created != 1 || result.Updated != 1 {
		t.Errorf("Import() = %+v, want 1 created and 1 updated", result)
	}

	first := repo.posts["first"]
	if first.Title != "First Post" {
		t.Errorf("first.Title = %q, want %q", first.Title, "First Post")
	}
	if first.Markdown != "# First\n\nBody\n" {
		t.Errorf("first.Markdown = %q", first.Markdown)
	}

	second := repo.posts["second"]
	if second.Title != "Second heading" {
		t.Errorf("second.Title = %q, want %q", second.Title, "Second heading")
	}
}

func TestImporter_Import_InvalidFileAborts(t *testing.T) {
	fsys := fstest.MapFS{
		"empty.md": {Data: []byte("---\ntitle: Empty\n---\n")},
	}
	repo := newFakePostRepository()
	errRolledBack := errors.New("rolled back")
	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		if err := fn(ctx); err != nil {
			return errors.Join(errRolledBack, err)
		}
		return nil
	}

	_, err := NewImporter(repo, source.NewFSSource(fsys), inTx).Import(context.Background())
	if !errors.Is(err, errRolledBack) {
		t.Fatalf("Import() error = %v, want the transaction to be aborted", err)
	}
	if repo.calls["CreatePost"] != 0 {
		t.Errorf("CreatePost calls = %d, want 0", repo.calls["CreatePost"])
	}
}

func TestExtractPostTitle(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{name: "Valid title", markdown: "# My Blog Post\nSome content", expected: "My Blog Post"},
		{name: "Title with extra spaces", markdown: "#   Title with spaces   \nContent", expected: "Title with spaces"},
		{name: "No title", markdown: "Some content without title", expected: "Untitled Post"},
		{name: "Empty markdown", markdown: "", expected: "Untitled Post"},
		{name: "Hash without space", markdown: "#NoSpace\nContent", expected: "Untitled Post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPostTitle(tt.markdown); got != tt.expected {
				t.Errorf("extractPostTitle() = %q, want %q", got, tt.expected)
			}
		})
	}
}
