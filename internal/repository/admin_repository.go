package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// AdminRepository defines persistence access for administrators.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	Update(ctx context.Context, admin *domain.Admin) error
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (username, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, admin.Username, admin.PasswordHash).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	return translate(err)
}

func (r *adminRepository) Update(ctx context.Context, admin *domain.Admin) error {
	const query = `
        UPDATE admins SET username=$1, password_hash=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`

	return translate(r.pool.QueryRow(ctx, query, admin.Username, admin.PasswordHash, admin.ID).Scan(&admin.UpdatedAt))
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	const query = `
        SELECT id, username, password_hash, created_at, updated_at
        FROM admins WHERE username=$1`

	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}
