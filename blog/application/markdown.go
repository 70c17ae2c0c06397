package application

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// TrustedHTML is renderer output that pages embed without escaping.
// Raw HTML in post markdown passes straight through, so only renderer output should ever become a TrustedHTML.
type TrustedHTML string

// Safe marks the content as safe for html/template.
func (h TrustedHTML) Safe() template.HTML {
	return template.HTML(h)
}

func (h TrustedHTML) String() string {
	return string(h)
}

// MarkdownRenderer defines the interface for converting markdown to HTML.
type MarkdownRenderer interface {
	Render(markdown string) (TrustedHTML, error)
}

// relativeLinkTransformer points links to sibling markdown files at the post they were imported as.
type relativeLinkTransformer struct {
	postsPath string
}

func (t *relativeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}

		dest := string(link.Destination)
		if isRelativeLink(dest) && strings.HasSuffix(dest, ".md") {
			slug := strings.TrimSuffix(path.Base(dest), ".md")
			link.Destination = []byte(t.postsPath + "/" + slug)
		}

		return ast.WalkContinue, nil
	})
}

func isRelativeLink(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") {
		return false
	}

	if strings.HasPrefix(dest, "./") || strings.HasPrefix(dest, "../") {
		return true
	}

	return !strings.Contains(dest, ":")
}

type GoldmarkRenderer struct {
	renderer goldmark.Markdown
}

// NewMarkdownRenderer builds the goldmark pipeline; relative .md links are rewritten under postsPath.
func NewMarkdownRenderer(postsPath string) *GoldmarkRenderer {
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&relativeLinkTransformer{postsPath: strings.TrimSuffix(postsPath, "/")}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)

	return &GoldmarkRenderer{
		renderer: renderer,
	}
}

func (r *GoldmarkRenderer) Render(markdown string) (TrustedHTML, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	return TrustedHTML(buf.String()), nil
}
