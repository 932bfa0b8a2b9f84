package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/repository"
)

type resolverFixture struct {
	tokens   *TokenManager
	resolver *IdentityResolver
	mem      *repository.Memory
}

func newResolverFixture(t *testing.T) resolverFixture {
	t.Helper()
	mem := repository.NewMemory()
	tokens := NewTokenManager("secret", 60)
	return resolverFixture{
		tokens: tokens,
		mem:    mem,
		resolver: NewIdentityResolver(tokens, CredentialStores{
			Admins:    mem.Admins(),
			Employees: mem.Employees(),
			Stations:  mem.Stations(),
			Vehicles:  mem.Vehicles(),
		}),
	}
}

func (f resolverFixture) token(t *testing.T, identifier string) string {
	t.Helper()
	tok, _, err := f.tokens.Issue(identifier)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func TestResolveEachRole(t *testing.T) {
	f := newResolverFixture(t)
	ctx := context.Background()

	mustCreate(t, f.mem.Admins().Create(ctx, &domain.Admin{Username: "root"}))
	mustCreate(t, f.mem.Stations().Create(ctx, &domain.FuelStation{Name: "Station A"}))
	mustCreate(t, f.mem.Employees().Create(ctx, &domain.Employee{Username: "emp1"}))
	mustCreate(t, f.mem.Vehicles().Create(ctx, &domain.Vehicle{RegistrationNumber: "CAB-1234"}))

	cases := []struct {
		identifier string
		role       domain.Role
	}{
		{"root", domain.RoleAdmin},
		{"Station A", domain.RoleFuelStation},
		{"emp1", domain.RoleEmployee},
		{"CAB-1234", domain.RoleVehicle},
	}
	for _, tc := range cases {
		p, err := f.resolver.Resolve(ctx, f.token(t, tc.identifier))
		if err != nil {
			t.Fatalf("resolve %s: %v", tc.identifier, err)
		}
		if p == nil {
			t.Fatalf("resolve %s: no principal", tc.identifier)
		}
		if p.Role != tc.role || p.Identifier != tc.identifier {
			t.Fatalf("resolve %s: got %s/%s", tc.identifier, p.Role, p.Identifier)
		}
		if p.ID() == "" {
			t.Fatalf("resolve %s: empty record id", tc.identifier)
		}
	}
}

func TestResolveCollisionFollowsProbeOrder(t *testing.T) {
	f := newResolverFixture(t)
	ctx := context.Background()

	mustCreate(t, f.mem.Vehicles().Create(ctx, &domain.Vehicle{RegistrationNumber: "X"}))
	mustCreate(t, f.mem.Admins().Create(ctx, &domain.Admin{Username: "X"}))
	mustCreate(t, f.mem.Employees().Create(ctx, &domain.Employee{Username: "X"}))

	p, err := f.resolver.Resolve(ctx, f.token(t, "X"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p == nil || p.Role != domain.RoleEmployee {
		t.Fatalf("expected employee principal, got %+v", p)
	}

	// Station and admin share a name: station is probed first.
	mustCreate(t, f.mem.Stations().Create(ctx, &domain.FuelStation{Name: "Y"}))
	mustCreate(t, f.mem.Admins().Create(ctx, &domain.Admin{Username: "Y"}))
	p, err = f.resolver.Resolve(ctx, f.token(t, "Y"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p == nil || p.Role != domain.RoleFuelStation {
		t.Fatalf("expected station principal, got %+v", p)
	}
}

func TestResolveUnauthenticated(t *testing.T) {
	f := newResolverFixture(t)
	ctx := context.Background()
	mustCreate(t, f.mem.Employees().Create(ctx, &domain.Employee{Username: "emp1"}))

	expiredTokens := NewTokenManager("secret", 1)
	expiredTokens.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _, _ := expiredTokens.Issue("emp1")

	for name, tok := range map[string]string{
		"nobody":  f.token(t, "ghost"),
		"expired": expired,
		"garbage": "abc.def.ghi",
	} {
		p, err := f.resolver.Resolve(ctx, tok)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if p != nil {
			t.Fatalf("%s: expected no principal, got %+v", name, p)
		}
	}
}

type failingEmployees struct {
	repository.EmployeeRepository
}

func (failingEmployees) GetByUsername(context.Context, string) (*domain.Employee, error) {
	return nil, errors.New("connection reset")
}

func TestResolveStoreFailure(t *testing.T) {
	mem := repository.NewMemory()
	tokens := NewTokenManager("secret", 60)
	resolver := NewIdentityResolver(tokens, CredentialStores{
		Admins:    mem.Admins(),
		Employees: failingEmployees{},
		Stations:  mem.Stations(),
		Vehicles:  mem.Vehicles(),
	})
	tok, _, _ := tokens.Issue("emp1")
	if _, err := resolver.Resolve(context.Background(), tok); err == nil {
		t.Fatal("expected store failure to surface")
	}
}

func mustCreate(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
}
