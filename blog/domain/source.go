package domain

import "context"

// PostSource provides markdown files that can be imported as posts.
type PostSource interface {
	// ListPostFiles returns the paths of every markdown file in the source
	ListPostFiles(ctx context.Context) ([]string, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
}
