package service

import (
	"context"
	"strings"

	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/repository"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// DMTService maintains the motor traffic registry used at vehicle registration.
type DMTService struct {
	records repository.DMTRepository
}

func NewDMTService(records repository.DMTRepository) *DMTService {
	return &DMTService{records: records}
}

// Upsert adds or replaces a registry record.
func (s *DMTService) Upsert(ctx context.Context, record domain.DMTRecord) (*domain.DMTRecord, error) {
	record.RegistrationNumber = strings.TrimSpace(record.RegistrationNumber)
	record.EngineNumber = strings.TrimSpace(record.EngineNumber)
	record.VehicleType = strings.ToLower(strings.TrimSpace(record.VehicleType))
	record.FuelType = strings.ToLower(strings.TrimSpace(record.FuelType))

	details := map[string]any{}
	if record.RegistrationNumber == "" {
		details["registrationNumber"] = "required"
	}
	if record.EngineNumber == "" {
		details["engineNumber"] = "required"
	}
	if record.VehicleType == "" {
		details["vehicleType"] = "required"
	}
	if record.FuelType == "" {
		details["fuelType"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid registry record", details)
	}
	if err := s.records.Upsert(ctx, &record); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &record, nil
}
