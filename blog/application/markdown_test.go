package application

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestIsRelativeLink(t *testing.T) {
	tests := []struct {
		dest     string
		expected bool
	}{
		{"other-post.md", true},
		{"./other-post.md", true},
		{"../drafts/other-post.md", true},
		{"/posts/other-post", false},
		{"https://example.com/post.md", false},
		{"mailto:me@example.com", false},
		{"#section", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			if got := isRelativeLink(tt.dest); got != tt.expected {
				t.Errorf("isRelativeLink(%q) = %v, want %v", tt.dest, got, tt.expected)
			}
		})
	}
}

func TestGoldmarkRenderer_Heading(t *testing.T) {
	renderer := NewMarkdownRenderer("/posts")

	html, err := renderer.Render("# Hi")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "<h1 id=\"hi\">Hi</h1>\n"
	if html.String() != want {
		t.Errorf("Render() = %q, want %q", html, want)
	}
}

func TestGoldmarkRenderer_Deterministic(t *testing.T) {
	renderer := NewMarkdownRenderer("/posts")
	input := "# Title\n\nSome *text* with a [link](other.md).\n\n- [ ] task\n"

	first, err := renderer.Render(input)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := renderer.Render(input)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if again != first {
			t.Fatalf("Render() = %q, want %q", again, first)
		}
	}
}

func TestGoldmarkRenderer_RewritesRelativeMarkdownLinks(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		contains string
	}{
		{
			name:     "sibling post",
			markdown: "[next](next-post.md)",
			contains: `href="/blog/posts/next-post"`,
		},
		{
			name:     "nested path keeps only the file name",
			markdown: "[next](../archive/next-post.md)",
			contains: `href="/blog/posts/next-post"`,
		},
		{
			name:     "absolute links untouched",
			markdown: "[home](https://example.com/readme.md)",
			contains: `href="https://example.com/readme.md"`,
		},
		{
			name:     "non markdown relative links untouched",
			markdown: "[image](diagram.png)",
			contains: `href="diagram.png"`,
		},
	}

	renderer := NewMarkdownRenderer("/blog/posts/")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderer.Render(tt.markdown)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if !strings.Contains(html.String(), tt.contains) {
				t.Errorf("Render() = %q, want it to contain %q", html, tt.contains)
			}
		})
	}
}

func TestGoldmarkRenderer_RawHTMLPassesThrough(t *testing.T) {
	renderer := NewMarkdownRenderer("/posts")

	html, err := renderer.Render("<div class=\"callout\">note</div>")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html.String(), `<div class="callout">note</div>`) {
		t.Errorf("Render() = %q, want raw HTML preserved", html)
	}
}

func TestGoldmarkRenderer_Golden(t *testing.T) {
	renderer := NewMarkdownRenderer("/posts")

	html, err := renderer.Render("# Hi\n\nSome *text*.\n")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "heading_and_paragraph", []byte(html))
}

func TestTrustedHTML_Safe(t *testing.T) {
	h := TrustedHTML("<p>x</p>")
	if string(h.Safe()) != "<p>x</p>" {
		t.Errorf("Safe() = %q, want %q", h.Safe(), "<p>x</p>")
	}
}
