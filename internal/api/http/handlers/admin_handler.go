package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fuel-service/internal/api/dto"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/service"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// AdminHandler groups registry and quota maintenance endpoints.
type AdminHandler struct {
	dmt   *service.DMTService
	quota *service.QuotaService
}

func NewAdminHandler(dmt *service.DMTService, quota *service.QuotaService) *AdminHandler {
	return &AdminHandler{dmt: dmt, quota: quota}
}

// UpsertDMTRecord handles POST /api/dmt.
func (h *AdminHandler) UpsertDMTRecord(c *fiber.Ctx) error {
	var req dto.DMTRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.dmt.Upsert(c.UserContext(), domain.DMTRecord{
		RegistrationNumber: req.RegistrationNumber,
		EngineNumber:       req.EngineNumber,
		VehicleType:        req.VehicleType,
		FuelType:           req.FuelType,
		OwnerName:          req.OwnerName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.DMTRecordResponse{
		RegistrationNumber: record.RegistrationNumber,
		VehicleType:        record.VehicleType,
		FuelType:           record.FuelType,
		OwnerName:          record.OwnerName,
	}})
}

// ResetQuotas handles POST /api/admins/quota/reset.
func (h *AdminHandler) ResetQuotas(c *fiber.Ctx) error {
	count, err := h.quota.ResetWeekly(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"vehicles_reset": count}})
}
