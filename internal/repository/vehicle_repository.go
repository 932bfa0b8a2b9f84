package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// VehicleRepository handles persistence for vehicles and their quota.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*domain.Vehicle, error)
	// ConsumeQuota subtracts amount in a single step. Without allowNegative
	// it fails with ErrQuotaExceeded instead of going below zero.
	ConsumeQuota(ctx context.Context, id string, amount int, allowNegative bool) (*domain.Vehicle, error)
	ResetQuotas(ctx context.Context) (int64, error)
}

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository instantiates the repository.
func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &vehicleRepository{pool: pool}
}

const vehicleColumns = `id, registration_number, engine_number_hash, model, owner_name, vehicle_type, fuel_type,
        weekly_quota, quota_remaining, created_at, updated_at`

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (registration_number, engine_number_hash, model, owner_name, vehicle_type, fuel_type,
            weekly_quota, quota_remaining)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		vehicle.RegistrationNumber,
		vehicle.EngineNumberHash,
		vehicle.Model,
		vehicle.OwnerName,
		vehicle.VehicleType,
		vehicle.FuelType,
		vehicle.WeeklyQuota,
		vehicle.QuotaRemaining,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	return translate(err)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        UPDATE vehicles
        SET engine_number_hash=$1, model=$2, owner_name=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	return translate(r.pool.QueryRow(ctx, query,
		vehicle.EngineNumberHash,
		vehicle.Model,
		vehicle.OwnerName,
		vehicle.ID,
	).Scan(&vehicle.UpdatedAt))
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return r.getOne(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id)
}

func (r *vehicleRepository) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	return r.getOne(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE registration_number=$1`, registrationNumber)
}

func (r *vehicleRepository) ConsumeQuota(ctx context.Context, id string, amount int, allowNegative bool) (*domain.Vehicle, error) {
	query := `
        UPDATE vehicles SET quota_remaining = quota_remaining - $2, updated_at=NOW()
        WHERE id=$1 AND ($3 OR quota_remaining >= $2)
        RETURNING ` + vehicleColumns

	vehicle, err := r.getOne(ctx, query, id, amount, allowNegative)
	if !errors.Is(err, ErrNotFound) {
		return vehicle, err
	}
	// Either the vehicle is unknown or the guard rejected the amount.
	if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
		return nil, lookupErr
	}
	return nil, ErrQuotaExceeded
}

func (r *vehicleRepository) ResetQuotas(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `UPDATE vehicles SET quota_remaining = weekly_quota, updated_at=NOW()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *vehicleRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&vehicle.ID,
		&vehicle.RegistrationNumber,
		&vehicle.EngineNumberHash,
		&vehicle.Model,
		&vehicle.OwnerName,
		&vehicle.VehicleType,
		&vehicle.FuelType,
		&vehicle.WeeklyQuota,
		&vehicle.QuotaRemaining,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &vehicle, nil
}
