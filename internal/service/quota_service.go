package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/auth"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/observability"
	"github.com/spec-kit/fuel-service/internal/repository"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// QuotaService deducts pumped fuel from a vehicle's weekly allowance.
type QuotaService struct {
	vehicles      repository.VehicleRepository
	dispatcher    events.Dispatcher
	metrics       *observability.Metrics
	logger        *zap.Logger
	allowNegative bool
}

// QuotaDependencies bundles collaborators for the quota service.
type QuotaDependencies struct {
	VehicleRepo repository.VehicleRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	// AllowNegative keeps the legacy behavior where quota may drop below zero.
	AllowNegative bool
}

// NewQuotaService constructs the service.
func NewQuotaService(deps QuotaDependencies) *QuotaService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotaService{
		vehicles:      deps.VehicleRepo,
		dispatcher:    deps.Dispatcher,
		metrics:       deps.Metrics,
		logger:        logger,
		allowNegative: deps.AllowNegative,
	}
}

// Consume subtracts pumpedAmount from the vehicle's remaining quota in one
// atomic step and returns the updated vehicle.
func (s *QuotaService) Consume(ctx context.Context, vehicleID string, pumpedAmount int) (*domain.Vehicle, error) {
	if pumpedAmount < 0 {
		s.metrics.RecordQuotaRejected("invalid_amount")
		return nil, apperrors.NewValidationError("pumpedAmount must be a non-negative integer",
			map[string]any{"pumpedAmount": pumpedAmount})
	}
	if _, err := uuid.Parse(vehicleID); err != nil {
		s.metrics.RecordQuotaRejected("not_found")
		return nil, apperrors.NewNotFound("vehicle", map[string]any{"id": vehicleID})
	}

	vehicle, err := s.vehicles.ConsumeQuota(ctx, vehicleID, pumpedAmount, s.allowNegative)
	switch {
	case err == nil:
	case apperrors.IsNotFound(err):
		s.metrics.RecordQuotaRejected("not_found")
		return nil, apperrors.NewNotFound("vehicle", map[string]any{"id": vehicleID})
	case errors.Is(err, repository.ErrQuotaExceeded):
		s.metrics.RecordQuotaRejected("exceeded")
		return nil, apperrors.NewValidationError("pumpedAmount exceeds remaining weekly quota",
			map[string]any{"pumpedAmount": pumpedAmount})
	default:
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordQuotaConsumed(vehicle.FuelType, pumpedAmount)
	s.publish(ctx, events.Event{
		Type:    events.EventQuotaConsumed,
		Subject: vehicle.ID,
		Payload: events.QuotaConsumedPayload{
			RegistrationNumber: vehicle.RegistrationNumber,
			PumpedAmount:       pumpedAmount,
			QuotaRemaining:     vehicle.QuotaRemaining,
			FuelStationID:      stationOf(ctx),
		},
	})
	return vehicle, nil
}

// ResetWeekly restores every vehicle's remaining quota to its allowance.
func (s *QuotaService) ResetWeekly(ctx context.Context) (int64, error) {
	count, err := s.vehicles.ResetQuotas(ctx)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	s.logger.Info("weekly quotas reset", zap.Int64("vehicles", count))
	s.publish(ctx, events.Event{
		Type:    events.EventQuotaReset,
		Payload: events.QuotaResetPayload{VehiclesReset: count},
	})
	return count, nil
}

func (s *QuotaService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, event)
}

func stationOf(ctx context.Context) string {
	if p, ok := auth.PrincipalFrom(ctx); ok && p.Role == domain.RoleEmployee {
		return p.Employee.FuelStationID
	}
	return ""
}

// publishEvent stamps the actor from ctx and dispatches. Delivery failures
// are logged; they never fail the operation that produced the event.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if p, ok := auth.PrincipalFrom(ctx); ok {
		event.Actor = events.Actor{Role: p.Role, Identifier: p.Identifier}
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event delivery failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
