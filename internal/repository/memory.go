package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// Memory is an in-memory store used when no POSTGRES_DSN is set and in tests.
// All tables share one lock so quota updates are serialized.
type Memory struct {
	mu            sync.Mutex
	admins        map[string]domain.Admin        // id -> admin
	employees     map[string]domain.Employee     // id -> employee
	stations      map[string]domain.FuelStation  // id -> station
	vehicles      map[string]domain.Vehicle      // id -> vehicle
	dmt           map[string]domain.DMTRecord    // registration number -> record
	distributions map[string]domain.Distribution // id -> distribution
	now           func() time.Time
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		admins:        map[string]domain.Admin{},
		employees:     map[string]domain.Employee{},
		stations:      map[string]domain.FuelStation{},
		vehicles:      map[string]domain.Vehicle{},
		dmt:           map[string]domain.DMTRecord{},
		distributions: map[string]domain.Distribution{},
		now:           time.Now,
	}
}

func (m *Memory) Admins() AdminRepository               { return memAdmins{m} }
func (m *Memory) Employees() EmployeeRepository         { return memEmployees{m} }
func (m *Memory) Stations() FuelStationRepository       { return memStations{m} }
func (m *Memory) Vehicles() VehicleRepository           { return memVehicles{m} }
func (m *Memory) DMT() DMTRepository                    { return memDMT{m} }
func (m *Memory) Distributions() DistributionRepository { return memDistributions{m} }

type memAdmins struct{ m *Memory }

func (r memAdmins) Create(_ context.Context, admin *domain.Admin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.admins {
		if existing.Username == admin.Username {
			return ErrDuplicate
		}
	}
	admin.ID = uuid.NewString()
	admin.CreatedAt = r.m.now()
	admin.UpdatedAt = admin.CreatedAt
	r.m.admins[admin.ID] = *admin
	return nil
}

func (r memAdmins) Update(_ context.Context, admin *domain.Admin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.admins[admin.ID]; !ok {
		return ErrNotFound
	}
	admin.UpdatedAt = r.m.now()
	r.m.admins[admin.ID] = *admin
	return nil
}

func (r memAdmins) GetByUsername(_ context.Context, username string) (*domain.Admin, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, admin := range r.m.admins {
		if admin.Username == username {
			return &admin, nil
		}
	}
	return nil, ErrNotFound
}

type memEmployees struct{ m *Memory }

func (r memEmployees) Create(_ context.Context, employee *domain.Employee) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.employees {
		if existing.Username == employee.Username {
			return ErrDuplicate
		}
	}
	employee.ID = uuid.NewString()
	employee.CreatedAt = r.m.now()
	employee.UpdatedAt = employee.CreatedAt
	r.m.employees[employee.ID] = *employee
	return nil
}

func (r memEmployees) Update(_ context.Context, employee *domain.Employee) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.employees[employee.ID]; !ok {
		return ErrNotFound
	}
	employee.UpdatedAt = r.m.now()
	r.m.employees[employee.ID] = *employee
	return nil
}

func (r memEmployees) GetByUsername(_ context.Context, username string) (*domain.Employee, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, employee := range r.m.employees {
		if employee.Username == username {
			return &employee, nil
		}
	}
	return nil, ErrNotFound
}

type memStations struct{ m *Memory }

func (r memStations) Create(_ context.Context, station *domain.FuelStation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.stations {
		if existing.Name == station.Name {
			return ErrDuplicate
		}
	}
	station.ID = uuid.NewString()
	station.CreatedAt = r.m.now()
	station.UpdatedAt = station.CreatedAt
	r.m.stations[station.ID] = *station
	return nil
}

func (r memStations) Update(_ context.Context, station *domain.FuelStation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.stations[station.ID]; !ok {
		return ErrNotFound
	}
	station.UpdatedAt = r.m.now()
	r.m.stations[station.ID] = *station
	return nil
}

func (r memStations) GetByID(_ context.Context, id string) (*domain.FuelStation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	station, ok := r.m.stations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &station, nil
}

func (r memStations) GetByName(_ context.Context, name string) (*domain.FuelStation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, station := range r.m.stations {
		if station.Name == name {
			return &station, nil
		}
	}
	return nil, ErrNotFound
}

func (r memStations) List(_ context.Context) ([]domain.FuelStation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	result := make([]domain.FuelStation, 0, len(r.m.stations))
	for _, station := range r.m.stations {
		result = append(result, station)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

type memVehicles struct{ m *Memory }

func (r memVehicles) Create(_ context.Context, vehicle *domain.Vehicle) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.vehicles {
		if existing.RegistrationNumber == vehicle.RegistrationNumber {
			return ErrDuplicate
		}
	}
	vehicle.ID = uuid.NewString()
	vehicle.CreatedAt = r.m.now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	r.m.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (r memVehicles) Update(_ context.Context, vehicle *domain.Vehicle) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.vehicles[vehicle.ID]
	if !ok {
		return ErrNotFound
	}
	// Only profile fields are writable here; quota goes through ConsumeQuota.
	stored.EngineNumberHash = vehicle.EngineNumberHash
	stored.Model = vehicle.Model
	stored.OwnerName = vehicle.OwnerName
	stored.UpdatedAt = r.m.now()
	r.m.vehicles[vehicle.ID] = stored
	vehicle.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r memVehicles) GetByID(_ context.Context, id string) (*domain.Vehicle, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	vehicle, ok := r.m.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &vehicle, nil
}

func (r memVehicles) GetByRegistrationNumber(_ context.Context, registrationNumber string) (*domain.Vehicle, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, vehicle := range r.m.vehicles {
		if vehicle.RegistrationNumber == registrationNumber {
			return &vehicle, nil
		}
	}
	return nil, ErrNotFound
}

func (r memVehicles) ConsumeQuota(_ context.Context, id string, amount int, allowNegative bool) (*domain.Vehicle, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	vehicle, ok := r.m.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !allowNegative && vehicle.QuotaRemaining < amount {
		return nil, ErrQuotaExceeded
	}
	vehicle.QuotaRemaining -= amount
	vehicle.UpdatedAt = r.m.now()
	r.m.vehicles[id] = vehicle
	return &vehicle, nil
}

func (r memVehicles) ResetQuotas(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := r.m.now()
	for id, vehicle := range r.m.vehicles {
		vehicle.QuotaRemaining = vehicle.WeeklyQuota
		vehicle.UpdatedAt = now
		r.m.vehicles[id] = vehicle
	}
	return int64(len(r.m.vehicles)), nil
}

type memDMT struct{ m *Memory }

func (r memDMT) Upsert(_ context.Context, record *domain.DMTRecord) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if existing, ok := r.m.dmt[record.RegistrationNumber]; ok {
		record.CreatedAt = existing.CreatedAt
	} else {
		record.CreatedAt = r.m.now()
	}
	r.m.dmt[record.RegistrationNumber] = *record
	return nil
}

func (r memDMT) GetByRegistrationNumber(_ context.Context, registrationNumber string) (*domain.DMTRecord, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	record, ok := r.m.dmt[registrationNumber]
	if !ok {
		return nil, ErrNotFound
	}
	return &record, nil
}

type memDistributions struct{ m *Memory }

func (r memDistributions) Create(_ context.Context, dist *domain.Distribution) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.stations[dist.FuelStationID]; !ok {
		return ErrNotFound
	}
	dist.ID = uuid.NewString()
	dist.CreatedAt = r.m.now()
	r.m.distributions[dist.ID] = *dist
	return nil
}

func (r memDistributions) List(_ context.Context, filter DistributionFilter) ([]domain.Distribution, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	result := make([]domain.Distribution, 0, len(r.m.distributions))
	for _, dist := range r.m.distributions {
		if filter.Since != nil && dist.Timestamp.Before(*filter.Since) {
			continue
		}
		if station, ok := r.m.stations[dist.FuelStationID]; ok {
			dist.FuelStationName = station.Name
		}
		result = append(result, dist)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}
