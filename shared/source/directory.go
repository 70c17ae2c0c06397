package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
)

var _ domain.PostSource = (*DirectorySource)(nil)

// DirectorySource reads posts from the markdown files under a directory tree.
type DirectorySource struct {
	fsys fs.FS
}

func NewDirectorySource(dir string) *DirectorySource {
	return NewFSSource(os.DirFS(dir))
}

func NewFSSource(fsys fs.FS) *DirectorySource {
	return &DirectorySource{fsys: fsys}
}

func (s *DirectorySource) ListPostFiles(ctx context.Context) ([]string, error) {
	var paths []string
	err := fs.WalkDir(s.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list markdown files: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}

func (s *DirectorySource) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}
