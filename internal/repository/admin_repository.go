package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/community-service/internal/domain"
)

// AdminRepository defines persistence access for admins. Admin rows are
// seeded out of band, so there is no Create.
type AdminRepository interface {
	GetActiveByID(ctx context.Context, id string) (*domain.Admin, error)
	GetActiveByEmail(ctx context.Context, email string) (*domain.Admin, error)
	ExistsActive(ctx context.Context, id string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) GetActiveByID(ctx context.Context, id string) (*domain.Admin, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
        FROM admins WHERE id=$1 AND deleted_at IS NULL`

	return scanAdmin(r.pool.QueryRow(ctx, query, id))
}

func (r *adminRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at, deleted_at
        FROM admins WHERE email=$1 AND deleted_at IS NULL`

	return scanAdmin(r.pool.QueryRow(ctx, query, email))
}

func (r *adminRepository) ExistsActive(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM admins WHERE id=$1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
        UPDATE admins SET password_hash=$1, updated_at=NOW()
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

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var a domain.Admin
	if err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}
