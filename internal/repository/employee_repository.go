package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// EmployeeRepository defines persistence access for pump attendants.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	GetByUsername(ctx context.Context, username string) (*domain.Employee, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (username, password_hash, fuel_station_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		employee.Username,
		employee.PasswordHash,
		employee.FuelStationID,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	return translate(err)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees SET username=$1, password_hash=$2, fuel_station_id=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	return translate(r.pool.QueryRow(ctx, query,
		employee.Username,
		employee.PasswordHash,
		employee.FuelStationID,
		employee.ID,
	).Scan(&employee.UpdatedAt))
}

func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	const query = `
        SELECT id, username, password_hash, fuel_station_id, created_at, updated_at
        FROM employees WHERE username=$1`

	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&employee.ID,
		&employee.Username,
		&employee.PasswordHash,
		&employee.FuelStationID,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &employee, nil
}
