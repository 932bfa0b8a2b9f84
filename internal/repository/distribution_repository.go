package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// DistributionRepository stores fuel deliveries to stations.
type DistributionRepository interface {
	Create(ctx context.Context, dist *domain.Distribution) error
	List(ctx context.Context, filter DistributionFilter) ([]domain.Distribution, error)
}

// DistributionFilter narrows a listing. Zero values mean unbounded.
type DistributionFilter struct {
	Since *time.Time
	Limit int
}

type distributionRepository struct {
	pool *pgxpool.Pool
}

// NewDistributionRepository instantiates the repository.
func NewDistributionRepository(pool *pgxpool.Pool) DistributionRepository {
	return &distributionRepository{pool: pool}
}

func (r *distributionRepository) Create(ctx context.Context, dist *domain.Distribution) error {
	const query = `
        INSERT INTO distributions (fuel_station_id, fuel_amount, fuel_type, distributed_at)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`

	return translate(r.pool.QueryRow(ctx, query,
		dist.FuelStationID,
		dist.FuelAmount,
		dist.FuelType,
		dist.Timestamp,
	).Scan(&dist.ID, &dist.CreatedAt))
}

func (r *distributionRepository) List(ctx context.Context, filter DistributionFilter) ([]domain.Distribution, error) {
	query := `
        SELECT d.id, d.fuel_station_id, s.name, d.fuel_amount, d.fuel_type, d.distributed_at, d.created_at
        FROM distributions d JOIN fuel_stations s ON s.id = d.fuel_station_id`
	args := []any{}
	if filter.Since != nil {
		args = append(args, *filter.Since)
		query += fmt.Sprintf(" WHERE d.distributed_at >= $%d", len(args))
	}
	query += " ORDER BY d.distributed_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Distribution
	for rows.Next() {
		var dist domain.Distribution
		if err := rows.Scan(
			&dist.ID,
			&dist.FuelStationID,
			&dist.FuelStationName,
			&dist.FuelAmount,
			&dist.FuelType,
			&dist.Timestamp,
			&dist.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, dist)
	}
	return result, rows.Err()
}
