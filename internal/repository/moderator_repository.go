package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// ModeratorRepository defines persistence access for moderators.
type ModeratorRepository interface {
	Create(ctx context.Context, moderator *domain.Moderator) error
	GetActiveByID(ctx context.Context, id string) (*domain.Moderator, error)
	GetActiveByEmail(ctx context.Context, email string) (*domain.Moderator, error)
	ExistsActive(ctx context.Context, id string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, includeRetired bool) ([]domain.Moderator, error)
	SoftDelete(ctx context.Context, id string) error
}

type moderatorRepository struct {
	pool *pgxpool.Pool
}

// NewModeratorRepository returns a Postgres-backed implementation.
func NewModeratorRepository(pool *pgxpool.Pool) ModeratorRepository {
	return &moderatorRepository{pool: pool}
}

func (r *moderatorRepository) Create(ctx context.Context, moderator *domain.Moderator) error {
	const query = `
        INSERT INTO moderators (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		moderator.Name,
		moderator.Email,
		moderator.PasswordHash,
	).Scan(&moderator.ID, &moderator.CreatedAt, &moderator.UpdatedAt)
}

func (r *moderatorRepository) GetActiveByID(ctx context.Context, id string) (*domain.Moderator, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
        FROM moderators WHERE id=$1 AND deleted_at IS NULL`

	return scanModerator(r.pool.QueryRow(ctx, query, id))
}

func (r *moderatorRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.Moderator, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
        FROM moderators WHERE email=$1 AND deleted_at IS NULL`

	return scanModerator(r.pool.QueryRow(ctx, query, email))
}

func (r *moderatorRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM moderators WHERE id=$1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *moderatorRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
        UPDATE moderators SET password_hash=$1, updated_at=NOW()
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

func (r *moderatorRepository) List(ctx context.Context, includeRetired bool) ([]domain.Moderator, error) {
	query := `
        SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
        FROM moderators`
	if !includeRetired {
		query += ` WHERE deleted_at IS NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moderators []domain.Moderator
	for rows.Next() {
		var m domain.Moderator
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.PasswordHash,
			&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
		); err != nil {
			return nil, err
		}
		moderators = append(moderators, m)
	}
	return moderators, rows.Err()
}

func (r *moderatorRepository) SoftDelete(ctx context.Context, id string) error {
	const query = `
        UPDATE moderators SET deleted_at=NOW(), updated_at=NOW()
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

func scanModerator(row pgx.Row) (*domain.Moderator, error) {
	var m domain.Moderator
	if err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.PasswordHash,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
