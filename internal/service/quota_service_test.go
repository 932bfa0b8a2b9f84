package service

import (
	"context"
	"sync"
	"testing"

	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/repository"
)

func newQuotaService(mem *repository.Memory, allowNegative bool) (*QuotaService, *recordingDispatcher) {
	dispatcher := newRecordingDispatcher()
	return NewQuotaService(QuotaDependencies{
		VehicleRepo:   mem.Vehicles(),
		Dispatcher:    dispatcher,
		AllowNegative: allowNegative,
	}), dispatcher
}

func TestConsumeSubtractsPumpedAmount(t *testing.T) {
	mem := repository.NewMemory()
	svc, dispatcher := newQuotaService(mem, false)
	vehicle := seedVehicle(t, mem, "CAB-1234", 50)

	updated, err := svc.Consume(context.Background(), vehicle.ID, 20)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if updated.QuotaRemaining != 30 {
		t.Fatalf("remaining = %d, want 30", updated.QuotaRemaining)
	}
	if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventQuotaConsumed {
		t.Fatalf("events = %+v", dispatcher.published)
	}
	payload := dispatcher.published[0].Payload.(events.QuotaConsumedPayload)
	if payload.PumpedAmount != 20 || payload.QuotaRemaining != 30 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestConsumeBeyondRemaining(t *testing.T) {
	cases := []struct {
		name          string
		allowNegative bool
		wantCode      string
		wantRemaining int
	}{
		{name: "rejected by default", allowNegative: false, wantCode: "VALIDATION_FAILED", wantRemaining: 50},
		{name: "allowed negative", allowNegative: true, wantCode: "", wantRemaining: -10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mem := repository.NewMemory()
			svc, _ := newQuotaService(mem, tc.allowNegative)
			vehicle := seedVehicle(t, mem, "CAB-1234", 50)

			_, err := svc.Consume(context.Background(), vehicle.ID, 60)
			if got := errorCode(err); got != tc.wantCode {
				t.Fatalf("code = %q, want %q (err %v)", got, tc.wantCode, err)
			}
			stored, _ := mem.Vehicles().GetByID(context.Background(), vehicle.ID)
			if stored.QuotaRemaining != tc.wantRemaining {
				t.Fatalf("remaining = %d, want %d", stored.QuotaRemaining, tc.wantRemaining)
			}
		})
	}
}

func TestConsumeRejectsInvalidInput(t *testing.T) {
	mem := repository.NewMemory()
	svc, dispatcher := newQuotaService(mem, false)
	vehicle := seedVehicle(t, mem, "CAB-1234", 50)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "00000000-0000-0000-0000-000000000000", 5); errorCode(err) != "NOT_FOUND" {
		t.Fatalf("unknown vehicle: got %v", err)
	}
	if _, err := svc.Consume(ctx, "not-a-uuid", 5); errorCode(err) != "NOT_FOUND" {
		t.Fatalf("malformed id: got %v", err)
	}
	if _, err := svc.Consume(ctx, vehicle.ID, -1); errorCode(err) != "VALIDATION_FAILED" {
		t.Fatalf("negative amount: got %v", err)
	}
	if len(dispatcher.published) != 0 {
		t.Fatalf("failed consumptions published %d events", len(dispatcher.published))
	}

	updated, err := svc.Consume(ctx, vehicle.ID, 0)
	if err != nil || updated.QuotaRemaining != 50 {
		t.Fatalf("zero amount: %+v %v", updated, err)
	}
}

func TestConsumeIsAtomicUnderConcurrency(t *testing.T) {
	mem := repository.NewMemory()
	svc, _ := newQuotaService(mem, false)
	vehicle := seedVehicle(t, mem, "CAB-1234", 50)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Consume(context.Background(), vehicle.ID, 10); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if success != 5 {
		t.Fatalf("successful deductions = %d, want 5", success)
	}
	stored, _ := mem.Vehicles().GetByID(context.Background(), vehicle.ID)
	if stored.QuotaRemaining != 0 {
		t.Fatalf("remaining = %d, want 0", stored.QuotaRemaining)
	}
}

func TestResetWeekly(t *testing.T) {
	mem := repository.NewMemory()
	svc, _ := newQuotaService(mem, false)
	vehicle := seedVehicle(t, mem, "CAB-1234", 50)
	seedVehicle(t, mem, "CAB-5678", 20)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, vehicle.ID, 45); err != nil {
		t.Fatalf("consume: %v", err)
	}
	count, err := svc.ResetWeekly(ctx)
	if err != nil || count != 2 {
		t.Fatalf("reset: %d %v", count, err)
	}
	stored, _ := mem.Vehicles().GetByID(ctx, vehicle.ID)
	if stored.QuotaRemaining != 50 {
		t.Fatalf("remaining = %d, want 50", stored.QuotaRemaining)
	}
}
