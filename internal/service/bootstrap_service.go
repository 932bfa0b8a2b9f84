package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/fuel-service/internal/config"
	"github.com/spec-kit/fuel-service/internal/domain"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// Seed applies the bootstrap file: registry records are upserted and admins
// that do not exist yet are created. It is safe to run on every start.
func Seed(ctx context.Context, seed *config.Bootstrap, authSvc *AuthService, dmtSvc *DMTService, logger *zap.Logger) error {
	if seed == nil {
		return nil
	}
	for _, rec := range seed.DMT {
		_, err := dmtSvc.Upsert(ctx, domain.DMTRecord{
			RegistrationNumber: rec.RegistrationNumber,
			EngineNumber:       rec.EngineNumber,
			VehicleType:        rec.VehicleType,
			FuelType:           rec.FuelType,
			OwnerName:          rec.OwnerName,
		})
		if err != nil {
			return fmt.Errorf("seed dmt record %q: %w", rec.RegistrationNumber, err)
		}
	}

	created := 0
	for _, admin := range seed.Admins {
		_, err := authSvc.RegisterAdmin(ctx, admin.Username, admin.Password)
		if err != nil {
			if isConflict(err) {
				continue
			}
			return fmt.Errorf("seed admin %q: %w", admin.Username, err)
		}
		created++
	}
	logger.Info("bootstrap applied",
		zap.Int("dmt_records", len(seed.DMT)),
		zap.Int("admins_created", created),
		zap.Int("quota_types", len(seed.Quotas)))
	return nil
}

// QuotaTableFrom builds the allowance table from the seed.
func QuotaTableFrom(seed *config.Bootstrap, fallback int) QuotaTable {
	table := QuotaTable{ByType: map[string]int{}, Default: fallback}
	if seed == nil {
		return table
	}
	for vehicleType, quota := range seed.Quotas {
		table.ByType[strings.ToLower(strings.TrimSpace(vehicleType))] = quota
	}
	return table
}

func isConflict(err error) bool {
	var domainErr *apperrors.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "CONFLICT"
}
