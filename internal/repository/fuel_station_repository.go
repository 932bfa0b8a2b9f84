package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// FuelStationRepository handles persistence for fuel stations.
type FuelStationRepository interface {
	Create(ctx context.Context, station *domain.FuelStation) error
	Update(ctx context.Context, station *domain.FuelStation) error
	GetByID(ctx context.Context, id string) (*domain.FuelStation, error)
	GetByName(ctx context.Context, name string) (*domain.FuelStation, error)
	List(ctx context.Context) ([]domain.FuelStation, error)
}

type fuelStationRepository struct {
	pool *pgxpool.Pool
}

// NewFuelStationRepository instantiates the repository.
func NewFuelStationRepository(pool *pgxpool.Pool) FuelStationRepository {
	return &fuelStationRepository{pool: pool}
}

const stationColumns = `id, name, address, phone_number, password_hash, status, created_at, updated_at`

func (r *fuelStationRepository) Create(ctx context.Context, station *domain.FuelStation) error {
	const query = `
        INSERT INTO fuel_stations (name, address, phone_number, password_hash, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		station.Name,
		station.Address,
		station.PhoneNumber,
		station.PasswordHash,
		station.Status,
	).Scan(&station.ID, &station.CreatedAt, &station.UpdatedAt)
	return translate(err)
}

func (r *fuelStationRepository) Update(ctx context.Context, station *domain.FuelStation) error {
	const query = `
        UPDATE fuel_stations
        SET name=$1, address=$2, phone_number=$3, password_hash=$4, status=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`

	return translate(r.pool.QueryRow(ctx, query,
		station.Name,
		station.Address,
		station.PhoneNumber,
		station.PasswordHash,
		station.Status,
		station.ID,
	).Scan(&station.UpdatedAt))
}

func (r *fuelStationRepository) GetByID(ctx context.Context, id string) (*domain.FuelStation, error) {
	return r.getOne(ctx, `SELECT `+stationColumns+` FROM fuel_stations WHERE id=$1`, id)
}

func (r *fuelStationRepository) GetByName(ctx context.Context, name string) (*domain.FuelStation, error) {
	return r.getOne(ctx, `SELECT `+stationColumns+` FROM fuel_stations WHERE name=$1`, name)
}

func (r *fuelStationRepository) List(ctx context.Context) ([]domain.FuelStation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+stationColumns+` FROM fuel_stations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FuelStation
	for rows.Next() {
		var station domain.FuelStation
		if err := scanStation(rows, &station); err != nil {
			return nil, err
		}
		result = append(result, station)
	}
	return result, rows.Err()
}

func (r *fuelStationRepository) getOne(ctx context.Context, query string, arg string) (*domain.FuelStation, error) {
	var station domain.FuelStation
	if err := scanStation(r.pool.QueryRow(ctx, query, arg), &station); err != nil {
		return nil, translate(err)
	}
	return &station, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner, station *domain.FuelStation) error {
	return row.Scan(
		&station.ID,
		&station.Name,
		&station.Address,
		&station.PhoneNumber,
		&station.PasswordHash,
		&station.Status,
		&station.CreatedAt,
		&station.UpdatedAt,
	)
}
