package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/onewheel-blog/blog/domain"
	"github.com/dfryer1193/onewheel-blog/shared/db"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var _ domain.PostRepository = (*SQLitePostRepository)(nil)

// SQLitePostRepository implements domain.PostRepository using SQL database (SQLite)
type SQLitePostRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostRepository creates a new SQLitePostRepository from a standard sql.DB
func NewPostRepository(conn *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{
		db:  conn,
		now: func() time.Time { return time.Now().UTC() },
	}
}

const listSummariesQuery = `
	SELECT slug, title
	FROM posts
	ORDER BY created_at, slug
`

// ListSummaries returns the slug and title of every post
func (r *SQLitePostRepository) ListSummaries(ctx context.Context) ([]domain.PostSummary, error) {
	rows, err := db.GetExecutor(ctx, r.db).QueryContext(ctx, listSummariesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list post summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.PostSummary, 0)
	for rows.Next() {
		var s domain.PostSummary
		if err := rows.Scan(&s.Slug, &s.Title); err != nil {
			return nil, fmt.Errorf("failed to scan post summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post summaries: %w", err)
	}

	return summaries, nil
}

const listPostsQuery = `
	SELECT slug, title, markdown, updated_at, created_at
	FROM posts
	ORDER BY created_at, slug
`

// ListPosts returns every post with all of its fields
func (r *SQLitePostRepository) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	rows, err := db.GetExecutor(ctx, r.db).QueryContext(ctx, listPostsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		var row postRow
		err := rows.Scan(
			&row.Slug,
			&row.Title,
			&row.Markdown,
			&row.UpdatedAt,
			&row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}

const getPostQuery = `
	SELECT slug, title, markdown, updated_at, created_at
	FROM posts
	WHERE slug = ?
`

// GetPost retrieves a single post by slug, returning nil when there is none
func (r *SQLitePostRepository) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	if slug == "" {
		return nil, fmt.Errorf("post slug cannot be empty")
	}

	var row postRow
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getPostQuery, slug).Scan(
		&row.Slug,
		&row.Title,
		&row.Markdown,
		&row.UpdatedAt,
		&row.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get post %q: %w", slug, err)
	}

	return row.toDomain(), nil
}

const createPostQuery = `
	INSERT INTO posts (slug, title, markdown, updated_at, created_at)
	VALUES (?, ?, ?, ?, ?)
`

// CreatePost inserts a new post; an existing slug yields domain.ErrDuplicateSlug
func (r *SQLitePostRepository) CreatePost(ctx context.Context, p *domain.Post) error {
	if p == nil {
		return fmt.Errorf("post cannot be nil")
	}

	if p.Slug == "" {
		return fmt.Errorf("post slug cannot be empty")
	}

	now := r.now()
	_, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, createPostQuery,
		p.Slug,
		p.Title,
		p.Markdown,
		now,
		now,
	)
	if err != nil {
		return wrapWriteError("create", p.Slug, err)
	}

	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

const updatePostQuery = `
	UPDATE posts
	SET slug = ?, title = ?, markdown = ?, updated_at = ?
	WHERE slug = ?
`

// UpdatePost replaces the post stored under slug with the values of p
func (r *SQLitePostRepository) UpdatePost(ctx context.Context, slug string, p *domain.Post) error {
	if p == nil {
		return fmt.Errorf("post cannot be nil")
	}

	if slug == "" || p.Slug == "" {
		return fmt.Errorf("post slug cannot be empty")
	}

	now := r.now()
	result, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, updatePostQuery,
		p.Slug,
		p.Title,
		p.Markdown,
		now,
		slug,
	)
	if err != nil {
		return wrapWriteError("update", slug, err)
	}

	if err := requireAffected(result, slug); err != nil {
		return err
	}

	p.UpdatedAt = now
	return nil
}

const deletePostQuery = `
	DELETE FROM posts
	WHERE slug = ?
`

// DeletePost removes the post stored under slug
func (r *SQLitePostRepository) DeletePost(ctx context.Context, slug string) error {
	if slug == "" {
		return fmt.Errorf("post slug cannot be empty")
	}

	result, err := db.GetExecutor(ctx, r.db).ExecContext(ctx, deletePostQuery, slug)
	if err != nil {
		return fmt.Errorf("failed to delete post %q: %w", slug, err)
	}

	return requireAffected(result, slug)
}

func requireAffected(result sql.Result, slug string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPostNotFound, slug)
	}

	return nil
}

func wrapWriteError(op string, slug string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("failed to %s post %q: %w", op, slug, domain.ErrDuplicateSlug)
	}
	return fmt.Errorf("failed to %s post %q: %w", op, slug, err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT:
		return true
	}
	return false
}

// postRow is a private struct used to scan database rows
type postRow struct {
	Slug      string       `db:"slug"`
	Title     string       `db:"title"`
	Markdown  string       `db:"markdown"`
	UpdatedAt sql.NullTime `db:"updated_at"`
	CreatedAt sql.NullTime `db:"created_at"`
}

// toDomain converts a postRow to a domain.Post, handling nullable times
func (pr *postRow) toDomain() *domain.Post {
	post := &domain.Post{
		Slug:     pr.Slug,
		Title:    pr.Title,
		Markdown: pr.Markdown,
	}

	if pr.UpdatedAt.Valid {
		post.UpdatedAt = pr.UpdatedAt.Time
	}
	if pr.CreatedAt.Valid {
		post.CreatedAt = pr.CreatedAt.Time
	}

	return post
}
