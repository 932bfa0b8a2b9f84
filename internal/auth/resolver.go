package auth

import (
	"context"
	"fmt"

	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/repository"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// Principal represents the authenticated caller. Exactly one of the entity
// pointers is set, matching Role.
type Principal struct {
	Role       domain.Role
	Identifier string
	Admin      *domain.Admin
	Employee   *domain.Employee
	Station    *domain.FuelStation
	Vehicle    *domain.Vehicle
}

// ID returns the database id of the resolved record.
func (p *Principal) ID() string {
	switch p.Role {
	case domain.RoleAdmin:
		return p.Admin.ID
	case domain.RoleEmployee:
		return p.Employee.ID
	case domain.RoleFuelStation:
		return p.Station.ID
	case domain.RoleVehicle:
		return p.Vehicle.ID
	}
	return ""
}

// ProbeOrder is the fixed sequence in which tables are checked for a token
// subject. The first hit wins, so an identifier present in several tables
// always resolves to the earliest role listed here.
var ProbeOrder = []domain.Role{
	domain.RoleEmployee,
	domain.RoleVehicle,
	domain.RoleFuelStation,
	domain.RoleAdmin,
}

// CredentialStores are the four identifier-keyed tables.
type CredentialStores struct {
	Admins    repository.AdminRepository
	Employees repository.EmployeeRepository
	Stations  repository.FuelStationRepository
	Vehicles  repository.VehicleRepository
}

type probe func(ctx context.Context, identifier string) (*Principal, error)

// IdentityResolver turns a bearer token into a role-tagged principal.
type IdentityResolver struct {
	tokens *TokenManager
	probes []probe
}

// NewIdentityResolver wires the probes in ProbeOrder.
func NewIdentityResolver(tokens *TokenManager, stores CredentialStores) *IdentityResolver {
	byRole := map[domain.Role]probe{
		domain.RoleEmployee: func(ctx context.Context, id string) (*Principal, error) {
			employee, err := stores.Employees.GetByUsername(ctx, id)
			if err != nil {
				return nil, err
			}
			return &Principal{Role: domain.RoleEmployee, Identifier: employee.Username, Employee: employee}, nil
		},
		domain.RoleVehicle: func(ctx context.Context, id string) (*Principal, error) {
			vehicle, err := stores.Vehicles.GetByRegistrationNumber(ctx, id)
			if err != nil {
				return nil, err
			}
			return &Principal{Role: domain.RoleVehicle, Identifier: vehicle.RegistrationNumber, Vehicle: vehicle}, nil
		},
		domain.RoleFuelStation: func(ctx context.Context, id string) (*Principal, error) {
			station, err := stores.Stations.GetByName(ctx, id)
			if err != nil {
				return nil, err
			}
			return &Principal{Role: domain.RoleFuelStation, Identifier: station.Name, Station: station}, nil
		},
		domain.RoleAdmin: func(ctx context.Context, id string) (*Principal, error) {
			admin, err := stores.Admins.GetByUsername(ctx, id)
			if err != nil {
				return nil, err
			}
			return &Principal{Role: domain.RoleAdmin, Identifier: admin.Username, Admin: admin}, nil
		},
	}

	probes := make([]probe, 0, len(ProbeOrder))
	for _, role := range ProbeOrder {
		probes = append(probes, byRole[role])
	}
	return &IdentityResolver{tokens: tokens, probes: probes}
}

// Resolve returns nil without error when the token is malformed, tampered,
// expired or names nobody. An error means a credential store failed.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*Principal, error) {
	subject, err := r.tokens.Subject(token)
	if err != nil {
		return nil, nil
	}
	return r.Lookup(ctx, subject)
}

// Lookup probes the credential stores for identifier in ProbeOrder.
func (r *IdentityResolver) Lookup(ctx context.Context, identifier string) (*Principal, error) {
	for i, p := range r.probes {
		principal, err := p(ctx, identifier)
		if err == nil {
			return principal, nil
		}
		if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("probe %s: %w", ProbeOrder[i], err)
		}
	}
	return nil, nil
}
