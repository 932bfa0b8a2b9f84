package service

import (
	"context"
	"testing"

	"github.com/spec-kit/fuel-service/internal/auth"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/repository"
)

func TestValidateReturnsRecordOnlyForCorrectSecret(t *testing.T) {
	mem := repository.NewMemory()
	svc := newTestAuthService(mem)
	ctx := context.Background()

	station := seedStation(t, mem, "Station A", domain.StationStatusActive)
	if _, err := svc.RegisterAdmin(ctx, "root", "rootpw"); err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if _, err := svc.RegisterEmployee(ctx, nil, "emp1", "pw1", station.ID); err != nil {
		t.Fatalf("register employee: %v", err)
	}

	admin, err := svc.ValidateAdmin(ctx, "root", "rootpw")
	if err != nil || admin == nil {
		t.Fatalf("validate admin: %v %v", admin, err)
	}
	employee, err := svc.ValidateEmployee(ctx, "emp1", "pw1")
	if err != nil || employee == nil || employee.FuelStationID != station.ID {
		t.Fatalf("validate employee: %+v %v", employee, err)
	}

	for name, check := range map[string]func() (bool, error){
		"wrong secret": func() (bool, error) {
			e, err := svc.ValidateEmployee(ctx, "emp1", "wrong")
			return e == nil, err
		},
		"wrong identifier": func() (bool, error) {
			e, err := svc.ValidateEmployee(ctx, "nobody", "pw1")
			return e == nil, err
		},
		"admin wrong secret": func() (bool, error) {
			a, err := svc.ValidateAdmin(ctx, "root", "pw1")
			return a == nil, err
		},
	} {
		absent, err := check()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		if !absent {
			t.Fatalf("%s: expected no record", name)
		}
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	mem := repository.NewMemory()
	svc := newTestAuthService(mem)
	ctx := context.Background()
	if _, err := svc.RegisterAdmin(ctx, "root", "rootpw"); err != nil {
		t.Fatalf("register admin: %v", err)
	}

	_, _, _, wrongSecret := svc.LoginAdmin(ctx, "root", "nope")
	_, _, _, wrongUser := svc.LoginAdmin(ctx, "ghost", "rootpw")
	if wrongSecret == nil || wrongUser == nil {
		t.Fatal("expected both logins to fail")
	}
	if wrongSecret.Error() != wrongUser.Error() || errorCode(wrongSecret) != "UNAUTHORIZED" {
		t.Fatalf("failures differ: %v vs %v", wrongSecret, wrongUser)
	}
}

func TestLoginIssuesResolvableToken(t *testing.T) {
	mem := repository.NewMemory()
	svc := newTestAuthService(mem)
	ctx := context.Background()
	if _, err := svc.RegisterAdmin(ctx, "root", "rootpw"); err != nil {
		t.Fatalf("register admin: %v", err)
	}
	_, token, _, err := svc.LoginAdmin(ctx, "root", "rootpw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	subject, err := svc.TokenManager().Subject(token)
	if err != nil || subject != "root" {
		t.Fatalf("subject = %q, %v", subject, err)
	}
}

func TestPendingStationCannotLogin(t *testing.T) {
	mem := repository.NewMemory()
	svc := newTestAuthService(mem)
	ctx := context.Background()

	station, err := svc.RegisterFuelStation(ctx, StationRegistration{Name: "Station B", Password: "pw"})
	if err != nil {
		t.Fatalf("register station: %v", err)
	}
	if station.Active() {
		t.Fatal("new station should be pending")
	}
	if _, _, _, err := svc.LoginFuelStation(ctx, "Station B", "pw"); errorCode(err) != "FORBIDDEN" {
		t.Fatalf("login pending: got %v", err)
	}

	station.Status = domain.StationStatusActive
	if err := mem.Stations().Update(ctx, station); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, _, _, err := svc.LoginFuelStation(ctx, "Station B", "pw"); err != nil {
		t.Fatalf("login active: %v", err)
	}
}

func TestRegisterVehicleRequiresRegistryMatch(t *testing.T) {
	mem := repository.NewMemory()
	svc := newTestAuthService(mem)
	ctx := context.Background()
	if err := mem.DMT().Upsert(ctx, &domain.DMTRecord{
		RegistrationNumber: "CAB-1234", EngineNumber: "ENG-1", VehicleType: "car", FuelType: "petrol", OwnerName: "Nimal",
	}); err != nil {
		t.Fatalf("seed dmt: %v", err)
	}

	if _, err := svc.RegisterVehicle(ctx, VehicleRegistration{RegistrationNumber: "CAB-1234", EngineNumber: "ENG-2"}); errorCode(err) != "VALIDATION_FAILED" {
		t.Fatalf("engine mismatch: got %v", err)
	}
	if _, err := svc.RegisterVehicle(ctx, VehicleRegistration{RegistrationNumber: "XYZ-0000", EngineNumber: "ENG-1"}); errorCode(err) != "VALIDATION_FAILED" {
		t.Fatalf("unknown registration: got %v", err)
	}

	vehicle, err := svc.RegisterVehicle(ctx, VehicleRegistration{RegistrationNumber: "CAB-1234", EngineNumber: "ENG-1", Model: "Axio"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if vehicle.WeeklyQuota != 50 || vehicle.QuotaRemaining != 50 || vehicle.OwnerName != "Nimal" {
		t.Fatalf("unexpected vehicle %+v", vehicle)
	}
	if vehicle.EngineNumberHash == "ENG-1" {
		t.Fatal("engine number stored in plain text")
	}
	if _, err := svc.RegisterVehicle(ctx, VehicleRegistration{RegistrationNumber: "CAB-1234", EngineNumber: "ENG-1"}); errorCode(err) != "CONFLICT" {
		t.Fatalf("duplicate: got %v", err)
	}

	found, err := svc.ValidateVehicle(ctx, "CAB-1234", "ENG-1")
	if err != nil || found == nil {
		t.Fatalf("validate vehicle: %v %v", found, err)
	}
}

func TestStationRegistersOnlyOwnEmployees(t *testing.T) {
	mem := repository.NewMemory()
	svc := newTestAuthService(mem)
	ctx := context.Background()
	own := seedStation(t, mem, "Own", domain.StationStatusActive)
	other := seedStation(t, mem, "Other", domain.StationStatusActive)
	actor := &auth.Principal{Role: domain.RoleFuelStation, Identifier: own.Name, Station: own}

	if _, err := svc.RegisterEmployee(ctx, actor, "emp2", "pw", other.ID); errorCode(err) != "FORBIDDEN" {
		t.Fatalf("foreign station: got %v", err)
	}
	employee, err := svc.RegisterEmployee(ctx, actor, "emp2", "pw", "")
	if err != nil {
		t.Fatalf("own station: %v", err)
	}
	if employee.FuelStationID != own.ID {
		t.Fatalf("station id = %s, want %s", employee.FuelStationID, own.ID)
	}
	if _, err := svc.RegisterEmployee(ctx, nil, "emp3", "pw", "not-a-uuid"); errorCode(err) != "NOT_FOUND" {
		t.Fatalf("bad station id: got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	mem := repository.NewMemory()
	svc := newTestAuthService(mem)
	ctx := context.Background()
	admin, err := svc.RegisterAdmin(ctx, "root", "old")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	principal := &auth.Principal{Role: domain.RoleAdmin, Identifier: "root", Admin: admin}

	if err := svc.ChangePassword(ctx, principal, "wrong", "new"); errorCode(err) != "UNAUTHORIZED" {
		t.Fatalf("wrong current: got %v", err)
	}
	if err := svc.ChangePassword(ctx, principal, "old", "new"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if a, _ := svc.ValidateAdmin(ctx, "root", "new"); a == nil {
		t.Fatal("new password not accepted")
	}
	if a, _ := svc.ValidateAdmin(ctx, "root", "old"); a != nil {
		t.Fatal("old password still accepted")
	}

	vehicle := &auth.Principal{Role: domain.RoleVehicle, Vehicle: &domain.Vehicle{}}
	if err := svc.ChangePassword(ctx, vehicle, "a", "b"); errorCode(err) != "FORBIDDEN" {
		t.Fatalf("vehicle change: got %v", err)
	}
}

func TestQuotaTableFallsBackToDefault(t *testing.T) {
	table := QuotaTable{ByType: map[string]int{"car": 50}, Default: 20}
	if got := table.For("CAR"); got != 50 {
		t.Fatalf("car quota = %d", got)
	}
	if got := table.For("tractor"); got != 20 {
		t.Fatalf("default quota = %d", got)
	}
}
