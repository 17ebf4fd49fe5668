package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// MemberRepository defines persistence access for community members. The
// Active* lookups exclude soft-deleted rows; ExistsActive is the single
// point read the authorization guard relies on.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetActiveByID(ctx context.Context, id string) (*domain.Member, error)
	GetActiveByEmail(ctx context.Context, email string) (*domain.Member, error)
	ExistsActive(ctx context.Context, id string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]domain.Member, error)
	SoftDelete(ctx context.Context, id string) error
}

type memberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository returns a Postgres-backed implementation.
func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &memberRepository{pool: pool}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	const query = `
        INSERT INTO members (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		member.Name,
		member.Email,
		member.PasswordHash,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *memberRepository) GetActiveByID(ctx context.Context, id string) (*domain.Member, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
        FROM members WHERE id=$1 AND deleted_at IS NULL`

	return scanMember(r.pool.QueryRow(ctx, query, id))
}

func (r *memberRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.Member, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
        FROM members WHERE email=$1 AND deleted_at IS NULL`

	return scanMember(r.pool.QueryRow(ctx, query, email))
}

func (r *memberRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM members WHERE id=$1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *memberRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
        UPDATE members SET password_hash=$1, updated_at=NOW()
        WHERE id=$2 AND deleted_at IS NULL`

	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *memberRepository) List(ctx context.Context, limit, offset int) ([]domain.Member, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
        FROM members WHERE deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.PasswordHash,
			&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE members SET deleted_at=NOW(), updated_at=NOW()
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

func scanMember(row pgx.Row) (*domain.Member, error) {
	var m domain.Member
	if err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.PasswordHash,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
