package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/fuel-service/internal/auth"
	"github.com/spec-kit/fuel-service/internal/config"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/repository"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// AuthService owns the credential stores: registration, credential
// validation and login for all four principal types.
type AuthService struct {
	admins    repository.AdminRepository
	employees repository.EmployeeRepository
	stations  repository.FuelStationRepository
	vehicles  repository.VehicleRepository
	dmt       repository.DMTRepository
	tokenMgr  *auth.TokenManager
	hasher    *auth.Hasher
	quotas    QuotaTable
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AdminRepo    repository.AdminRepository
	EmployeeRepo repository.EmployeeRepository
	StationRepo  repository.FuelStationRepository
	VehicleRepo  repository.VehicleRepository
	DMTRepo      repository.DMTRepository
	Quotas       QuotaTable
}

// QuotaTable maps a vehicle type to its weekly allowance.
type QuotaTable struct {
	ByType  map[string]int
	Default int
}

// For returns the allowance for vehicleType, falling back to Default.
func (q QuotaTable) For(vehicleType string) int {
	if quota, ok := q.ByType[strings.ToLower(vehicleType)]; ok {
		return quota
	}
	return q.Default
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:    deps.AdminRepo,
		employees: deps.EmployeeRepo,
		stations:  deps.StationRepo,
		vehicles:  deps.VehicleRepo,
		dmt:       deps.DMTRepo,
		tokenMgr:  auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		hasher:    auth.NewHasher(cfg.Auth.BcryptCost),
		quotas:    deps.Quotas,
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// StationRegistration is the payload for a new fuel station.
type StationRegistration struct {
	Name        string
	Address     string
	PhoneNumber string
	Password    string
}

// VehicleRegistration is the payload for a new vehicle.
type VehicleRegistration struct {
	RegistrationNumber string
	EngineNumber       string
	Model              string
	OwnerName          string
}

// RegisterAdmin creates an administrator account.
func (s *AuthService) RegisterAdmin(ctx context.Context, username, password string) (*domain.Admin, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	admin := &domain.Admin{Username: username, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, createError(err, "username already registered", username)
	}
	return admin, nil
}

// RegisterEmployee creates an employee bound to a station. Stations may only
// register employees for themselves.
func (s *AuthService) RegisterEmployee(ctx context.Context, actor *auth.Principal, username, password, stationID string) (*domain.Employee, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	if actor != nil && actor.Role == domain.RoleFuelStation {
		if stationID == "" {
			stationID = actor.Station.ID
		}
		if stationID != actor.Station.ID {
			return nil, apperrors.NewForbidden("stations may only register their own employees")
		}
	}
	station, err := s.stationByID(ctx, stationID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	employee := &domain.Employee{Username: username, PasswordHash: hash, FuelStationID: station.ID}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, createError(err, "username already registered", username)
	}
	return employee, nil
}

// RegisterFuelStation creates a station pending admin approval.
func (s *AuthService) RegisterFuelStation(ctx context.Context, in StationRegistration) (*domain.FuelStation, error) {
	if in.Name == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("name and password required", nil)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	station := &domain.FuelStation{
		Name:         in.Name,
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		Status:       domain.StationStatusPending,
	}
	if err := s.stations.Create(ctx, station); err != nil {
		return nil, createError(err, "station name already registered", in.Name)
	}
	return station, nil
}

// RegisterVehicle admits a vehicle listed in the motor traffic registry.
// The engine number must match the registry and is stored hashed.
func (s *AuthService) RegisterVehicle(ctx context.Context, in VehicleRegistration) (*domain.Vehicle, error) {
	if in.RegistrationNumber == "" || in.EngineNumber == "" {
		return nil, apperrors.NewValidationError("registrationNumber and engineNumber required", nil)
	}
	record, err := s.dmt.GetByRegistrationNumber(ctx, in.RegistrationNumber)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.NewInternalError(err)
	}
	if record == nil || record.EngineNumber != in.EngineNumber {
		return nil, apperrors.NewValidationError("vehicle not found in motor traffic registry",
			map[string]any{"registrationNumber": in.RegistrationNumber})
	}

	hash, err := s.hasher.Hash(in.EngineNumber)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	owner := in.OwnerName
	if owner == "" {
		owner = record.OwnerName
	}
	quota := s.quotas.For(record.VehicleType)
	vehicle := &domain.Vehicle{
		RegistrationNumber: in.RegistrationNumber,
		EngineNumberHash:   hash,
		Model:              in.Model,
		OwnerName:          owner,
		VehicleType:        record.VehicleType,
		FuelType:           record.FuelType,
		WeeklyQuota:        quota,
		QuotaRemaining:     quota,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, createError(err, "vehicle already registered", in.RegistrationNumber)
	}
	return vehicle, nil
}

// ValidateAdmin returns the admin when password matches, nil otherwise.
func (s *AuthService) ValidateAdmin(ctx context.Context, username, password string) (*domain.Admin, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.NewInternalError(err)
	}
	if admin == nil {
		s.hasher.Burn(password)
		return nil, nil
	}
	if !s.hasher.Matches(admin.PasswordHash, password) {
		return nil, nil
	}
	return admin, nil
}

// ValidateEmployee returns the employee when password matches, nil otherwise.
func (s *AuthService) ValidateEmployee(ctx context.Context, username, password string) (*domain.Employee, error) {
	employee, err := s.employees.GetByUsername(ctx, username)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.NewInternalError(err)
	}
	if employee == nil {
		s.hasher.Burn(password)
		return nil, nil
	}
	if !s.hasher.Matches(employee.PasswordHash, password) {
		return nil, nil
	}
	return employee, nil
}

// ValidateFuelStation returns the station when password matches, nil otherwise.
func (s *AuthService) ValidateFuelStation(ctx context.Context, name, password string) (*domain.FuelStation, error) {
	station, err := s.stations.GetByName(ctx, name)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.NewInternalError(err)
	}
	if station == nil {
		s.hasher.Burn(password)
		return nil, nil
	}
	if !s.hasher.Matches(station.PasswordHash, password) {
		return nil, nil
	}
	return station, nil
}

// ValidateVehicle returns the vehicle when engineNumber matches, nil otherwise.
func (s *AuthService) ValidateVehicle(ctx context.Context, registrationNumber, engineNumber string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByRegistrationNumber(ctx, registrationNumber)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, apperrors.NewInternalError(err)
	}
	if vehicle == nil {
		s.hasher.Burn(engineNumber)
		return nil, nil
	}
	if !s.hasher.Matches(vehicle.EngineNumberHash, engineNumber) {
		return nil, nil
	}
	return vehicle, nil
}

// LoginAdmin authenticates an administrator.
func (s *AuthService) LoginAdmin(ctx context.Context, username, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.ValidateAdmin(ctx, username, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	token, exp, err := s.issue(admin.Username)
	return admin, token, exp, err
}

// LoginEmployee authenticates a pump attendant.
func (s *AuthService) LoginEmployee(ctx context.Context, username, password string) (*domain.Employee, string, time.Time, error) {
	employee, err := s.ValidateEmployee(ctx, username, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if employee == nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	token, exp, err := s.issue(employee.Username)
	return employee, token, exp, err
}

// LoginFuelStation authenticates a station; pending stations are refused.
func (s *AuthService) LoginFuelStation(ctx context.Context, name, password string) (*domain.FuelStation, string, time.Time, error) {
	station, err := s.ValidateFuelStation(ctx, name, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if station == nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if !station.Active() {
		return nil, "", time.Time{}, apperrors.NewForbidden("station pending approval")
	}
	token, exp, err := s.issue(station.Name)
	return station, token, exp, err
}

// LoginVehicle authenticates a vehicle by registration and engine number.
func (s *AuthService) LoginVehicle(ctx context.Context, registrationNumber, engineNumber string) (*domain.Vehicle, string, time.Time, error) {
	vehicle, err := s.ValidateVehicle(ctx, registrationNumber, engineNumber)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if vehicle == nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	token, exp, err := s.issue(vehicle.RegistrationNumber)
	return vehicle, token, exp, err
}

// ChangePassword verifies current password before updating to new hash.
// Vehicles rotate their secret through a profile update instead.
func (s *AuthService) ChangePassword(ctx context.Context, principal *auth.Principal, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return apperrors.NewValidationError("current and new password required", nil)
	}

	var stored string
	switch principal.Role {
	case domain.RoleAdmin:
		stored = principal.Admin.PasswordHash
	case domain.RoleEmployee:
		stored = principal.Employee.PasswordHash
	case domain.RoleFuelStation:
		stored = principal.Station.PasswordHash
	default:
		return apperrors.NewForbidden("password change not supported for this principal")
	}
	if !s.hasher.Matches(stored, currentPassword) {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	switch principal.Role {
	case domain.RoleAdmin:
		admin := *principal.Admin
		admin.PasswordHash = hash
		err = s.admins.Update(ctx, &admin)
	case domain.RoleEmployee:
		employee := *principal.Employee
		employee.PasswordHash = hash
		err = s.employees.Update(ctx, &employee)
	case domain.RoleFuelStation:
		station := *principal.Station
		station.PasswordHash = hash
		err = s.stations.Update(ctx, &station)
	}
	return apperrors.MapError(err)
}

func (s *AuthService) issue(identifier string) (string, time.Time, error) {
	token, exp, err := s.tokenMgr.Issue(identifier)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

func (s *AuthService) stationByID(ctx context.Context, id string) (*domain.FuelStation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("fuel station", map[string]any{"id": id})
	}
	station, err := s.stations.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("fuel station", map[string]any{"id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return station, nil
}

func createError(err error, conflictMsg, identifier string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict(conflictMsg, map[string]any{"identifier": identifier})
	}
	return apperrors.NewInternalError(err)
}
