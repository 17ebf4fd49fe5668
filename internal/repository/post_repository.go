package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// PostRepository defines persistence access for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	SetStatus(ctx context.Context, id string, status domain.PostStatus) error
	SoftDelete(ctx context.Context, id string) error
	ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]domain.Post, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns a Postgres-backed implementation.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (author_id, title, body, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		post.AuthorID,
		post.Title,
		post.Body,
		post.Status,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	const query = `
        SELECT id, author_id, title, body, status, created_at, updated_at, deleted_at
        FROM posts WHERE id=$1 AND deleted_at IS NULL`

	var p domain.Post
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Status,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	const query = `
        UPDATE posts SET title=$1, body=$2, updated_at=NOW()
        WHERE id=$3 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, post.Title, post.Body, post.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) SetStatus(ctx context.Context, id string, status domain.PostStatus) error {
	const query = `
        UPDATE posts SET status=$1, updated_at=NOW()
        WHERE id=$2 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE posts SET deleted_at=NOW(), updated_at=NOW()
        WHERE id=$1 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]domain.Post, error) {
	const query = `
        SELECT id, author_id, title, body, status, created_at, updated_at, deleted_at
        FROM posts WHERE author_id=$1 AND deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`

	return r.queryPosts(ctx, query, authorID, limit, offset)
}

func (r *postRepository) ListPublished(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	const query = `
        SELECT id, author_id, title, body, status, created_at, updated_at, deleted_at
        FROM posts WHERE status='PUBLISHED' AND deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	return r.queryPosts(ctx, query, limit, offset)
}

func (r *postRepository) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.Status,
			&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
