package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
)

// fakePostRepository is an in-memory domain.PostRepository that counts calls.
type fakePostRepository struct {
	posts map[string]domain.Post
	calls map[string]int
	err   error
}

func newFakePostRepository(posts ...domain.Post) *fakePostRepository {
	r := &fakePostRepository{
		posts: make(map[string]domain.Post),
		calls: make(map[string]int),
	}
	for _, p := range posts {
		r.posts[p.Slug] = p
	}
	return r
}

func (r *fakePostRepository) totalCalls() int {
	total := 0
	for _, n := range r.calls {
		total += n
	}
	return total
}

func (r *fakePostRepository) ListSummaries(ctx context.Context) ([]domain.PostSummary, error) {
	r.calls["ListSummaries"]++
	if r.err != nil {
		return nil, r.err
	}
	var res []domain.PostSummary
	for _, slug := range r.sortedSlugs() {
		res = append(res, domain.PostSummary{Slug: slug, Title: r.posts[slug].Title})
	}
	return res, nil
}

func (r *fakePostRepository) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	r.calls["ListPosts"]++
	if r.err != nil {
		return nil, r.err
	}
	var res []*domain.Post
	for _, slug := range r.sortedSlugs() {
		p := r.posts[slug]
		res = append(res, &p)
	}
	return res, nil
}

func (r *fakePostRepository) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	r.calls["GetPost"]++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.posts[slug]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	r.calls["CreatePost"]++
	if r.err != nil {
		return r.err
	}
	if _, ok := r.posts[p.Slug]; ok {
		return fmt.Errorf("create: %w", domain.ErrDuplicateSlug)
	}
	r.posts[p.Slug] = *p
	return nil
}

func (r *fakePostRepository) UpdatePost(ctx context.Context, slug string, p *domain.Post) error {
	r.calls["UpdatePost"]++
	if r.err != nil {
		return r.err
	}
	if _, ok := r.posts[slug]; !ok {
		return fmt.Errorf("update: %w", domain.ErrPostNotFound)
	}
	if _, taken := r.posts[p.Slug]; taken && p.Slug != slug {
		return fmt.Errorf("update: %w", domain.ErrDuplicateSlug)
	}
	delete(r.posts, slug)
	r.posts[p.Slug] = *p
	return nil
}

func (r *fakePostRepository) DeletePost(ctx context.Context, slug string) error {
	r.calls["DeletePost"]++
	if r.err != nil {
		return r.err
	}
	if _, ok := r.posts[slug]; !ok {
		return fmt.Errorf("delete: %w", domain.ErrPostNotFound)
	}
	delete(r.posts, slug)
	return nil
}

func (r *fakePostRepository) sortedSlugs() []string {
	slugs := make([]string, 0, len(r.posts))
	for slug := range r.posts {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

type failingRenderer struct{}

func (failingRenderer) Render(string) (TrustedHTML, error) {
	return "", errors.New("renderer exploded")
}
