package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/rs/zerolog/log"
)

// AdminService serves the admin write path. Callers must have resolved the admin identity first.
type AdminService struct {
	repo domain.PostRepository
}

func NewAdminService(repo domain.PostRepository) *AdminService {
	return &AdminService{
		repo: repo,
	}
}

// ListPosts returns every post for the admin listing
func (s *AdminService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list posts: %w", err)
	}
	return posts, nil
}

// LoadPost returns the post that seeds the edit form, or nil for the new-post sentinel.
func (s *AdminService) LoadPost(ctx context.Context, slug string) (*domain.Post, error) {
	if slug == "" {
		return nil, domain.ErrMissingParameter
	}

	if slug == domain.NewPostSlug {
		return nil, nil
	}

	post, err := s.repo.GetPost(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("could not load post %q: %w", slug, err)
	}
	if post == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPostNotFound, slug)
	}

	return post, nil
}

// Submit applies a form submission against the post addressed by routeSlug.
// Non-empty FieldErrors mean nothing was written and the form should be shown again.
func (s *AdminService) Submit(ctx context.Context, routeSlug string, sub Submission) (FieldErrors, error) {
	if routeSlug == "" {
		return nil, domain.ErrMissingParameter
	}

	intent, err := ParseIntent(sub.Intent)
	if err != nil {
		return nil, err
	}

	if intent == IntentDelete {
		if err := s.repo.DeletePost(ctx, routeSlug); err != nil {
			return nil, fmt.Errorf("could not delete post %q: %w", routeSlug, err)
		}
		log.Info().Str("slug", routeSlug).Msg("Deleted post")
		return nil, nil
	}

	input, fieldErrs := ParsePostInput(sub)
	if len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	post := input.toDomain()
	if routeSlug == domain.NewPostSlug {
		err = s.repo.CreatePost(ctx, post)
	} else {
		err = s.repo.UpdatePost(ctx, routeSlug, post)
	}

	if errors.Is(err, domain.ErrDuplicateSlug) {
		return FieldErrors{"slug": duplicateSlugMessage}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not save post %q: %w", routeSlug, err)
	}

	log.Info().Str("route_slug", routeSlug).Str("slug", post.Slug).Str("intent", string(intent)).Msg("Saved post")
	return nil, nil
}
