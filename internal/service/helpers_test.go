package service

import (
	"context"
	"sync"
	"testing"

	"github.com/spec-kit/fuel-service/internal/config"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/repository"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
			QRSigningSecret:       "qr-secret",
		},
		Quota: config.QuotaConfig{DefaultWeeklyQuota: 20},
	}
}

func newTestAuthService(mem *repository.Memory) *AuthService {
	return NewAuthService(testConfig(), AuthDependencies{
		AdminRepo:    mem.Admins(),
		EmployeeRepo: mem.Employees(),
		StationRepo:  mem.Stations(),
		VehicleRepo:  mem.Vehicles(),
		DMTRepo:      mem.DMT(),
		Quotas:       QuotaTable{ByType: map[string]int{"car": 50, "bus": 100}, Default: 20},
	})
}

func seedVehicle(t *testing.T, mem *repository.Memory, reg string, quota int) *domain.Vehicle {
	t.Helper()
	v := &domain.Vehicle{
		RegistrationNumber: reg,
		VehicleType:        "car",
		FuelType:           "petrol",
		WeeklyQuota:        quota,
		QuotaRemaining:     quota,
	}
	if err := mem.Vehicles().Create(context.Background(), v); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func seedStation(t *testing.T, mem *repository.Memory, name string, status domain.StationStatus) *domain.FuelStation {
	t.Helper()
	s := &domain.FuelStation{Name: name, Status: status}
	if err := mem.Stations().Create(context.Background(), s); err != nil {
		t.Fatalf("seed station: %v", err)
	}
	return s
}

func errorCode(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.ToDomainError(err).Code
}

type recordingDispatcher struct {
	events.Dispatcher
	mu        sync.Mutex
	published []events.Event
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{Dispatcher: events.NewInMemoryDispatcher()}
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	d.published = append(d.published, event)
	d.mu.Unlock()
	return d.Dispatcher.Publish(ctx, event)
}
