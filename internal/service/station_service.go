package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/repository"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// StationService manages fuel station approval.
type StationService struct {
	stations   repository.FuelStationRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewStationService constructs the service.
func NewStationService(stations repository.FuelStationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *StationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StationService{stations: stations, dispatcher: dispatcher, logger: logger}
}

// List returns every station with its approval status.
func (s *StationService) List(ctx context.Context) ([]domain.FuelStation, error) {
	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return stations, nil
}

// Activate approves a pending station. Activating an active station is a no-op.
func (s *StationService) Activate(ctx context.Context, id string) (*domain.FuelStation, error) {
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
	if station.Active() {
		return station, nil
	}

	station.Status = domain.StationStatusActive
	if err := s.stations.Update(ctx, station); err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:    events.EventStationActivated,
		Subject: station.ID,
		Payload: events.StationActivatedPayload{Name: station.Name},
	})
	return station, nil
}
