package application

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/rs/zerolog/log"
)

// TxRunner runs fn atomically; db.RunInTransaction bound to a connection satisfies it.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// ImportResult counts what an import changed.
type ImportResult struct {
	Created int
	Updated int
}

// Importer upserts markdown files from a PostSource into the repository.
type Importer struct {
	repo   domain.PostRepository
	source domain.PostSource
	inTx   TxRunner
}

func NewImporter(repo domain.PostRepository, source domain.PostSource, inTx TxRunner) *Importer {
	return &Importer{
		repo:   repo,
		source: source,
		inTx:   inTx,
	}
}

type postFrontMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
	Slug  string `yaml:"slug" toml:"slug" json:"slug"`
}

// Import reads every file in the source and creates or replaces the matching post.
// Either every file is imported or none is.
func (i *Importer) Import(ctx context.Context) (ImportResult, error) {
	paths, err := i.source.ListPostFiles(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	err = i.inTx(ctx, func(txCtx context.Context) error {
		result = ImportResult{}
		for _, p := range paths {
			created, err := i.importFile(txCtx, p)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", p, err)
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}

	log.Info().Int("created", result.Created).Int("updated", result.Updated).Msg("Imported posts")
	return result, nil
}

func (i *Importer) importFile(ctx context.Context, filePath string) (bool, error) {
	content, err := i.source.ReadFile(ctx, filePath)
	if err != nil {
		return false, err
	}

	post, err := parsePostFile(filePath, content)
	if err != nil {
		return false, err
	}

	existing, err := i.repo.GetPost(ctx, post.Slug)
	if err != nil {
		return false, err
	}

	if existing == nil {
		return true, i.repo.CreatePost(ctx, post)
	}
	return false, i.repo.UpdatePost(ctx, post.Slug, post)
}

func parsePostFile(filePath string, content []byte) (*domain.Post, error) {
	var meta postFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return nil, fmt.Errorf("invalid front matter: %w", err)
	}

	markdown := strings.TrimLeft(string(body), "\n")

	slug := strings.TrimSpace(meta.Slug)
	if slug == "" {
		slug = strings.TrimSuffix(path.Base(filePath), ".md")
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = extractPostTitle(markdown)
	}

	input, fieldErrs := ParsePostInput(Submission{Title: title, Slug: slug, Markdown: markdown})
	if len(fieldErrs) > 0 {
		return nil, fmt.Errorf("invalid post: %v", map[string]string(fieldErrs))
	}

	return input.toDomain(), nil
}

// extractPostTitle returns the text of a leading "# " heading, or "Untitled Post".
func extractPostTitle(markdown string) string {
	firstLine, _, _ := strings.Cut(markdown, "\n")
	title, found := strings.CutPrefix(strings.TrimSpace(firstLine), "# ")
	if !found {
		return "Untitled Post"
	}

	return strings.TrimSpace(title)
}
