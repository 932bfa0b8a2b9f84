package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// DMTRepository reads and writes the motor traffic registry.
type DMTRepository interface {
	Upsert(ctx context.Context, record *domain.DMTRecord) error
	GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*domain.DMTRecord, error)
}

type dmtRepository struct {
	pool *pgxpool.Pool
}

// NewDMTRepository instantiates the repository.
func NewDMTRepository(pool *pgxpool.Pool) DMTRepository {
	return &dmtRepository{pool: pool}
}

func (r *dmtRepository) Upsert(ctx context.Context, record *domain.DMTRecord) error {
	const query = `
        INSERT INTO dmt_records (registration_number, engine_number, vehicle_type, fuel_type, owner_name)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (registration_number) DO UPDATE
        SET engine_number=EXCLUDED.engine_number, vehicle_type=EXCLUDED.vehicle_type,
            fuel_type=EXCLUDED.fuel_type, owner_name=EXCLUDED.owner_name
        RETURNING created_at`

	return translate(r.pool.QueryRow(ctx, query,
		record.RegistrationNumber,
		record.EngineNumber,
		record.VehicleType,
		record.FuelType,
		record.OwnerName,
	).Scan(&record.CreatedAt))
}

func (r *dmtRepository) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*domain.DMTRecord, error) {
	const query = `
        SELECT registration_number, engine_number, vehicle_type, fuel_type, owner_name, created_at
        FROM dmt_records WHERE registration_number=$1`

	var record domain.DMTRecord
	if err := r.pool.QueryRow(ctx, query, registrationNumber).Scan(
		&record.RegistrationNumber,
		&record.EngineNumber,
		&record.VehicleType,
		&record.FuelType,
		&record.OwnerName,
		&record.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &record, nil
}
