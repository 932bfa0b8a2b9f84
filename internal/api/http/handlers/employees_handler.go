package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fuel-service/internal/api/dto"
	"github.com/spec-kit/fuel-service/internal/service"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// EmployeesHandler serves the pump attendant workflow: scan, then pump.
type EmployeesHandler struct {
	quota    *service.QuotaService
	vehicles *service.VehicleService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(quota *service.QuotaService, vehicles *service.VehicleService) *EmployeesHandler {
	return &EmployeesHandler{quota: quota, vehicles: vehicles}
}

// ScanQR handles POST /api/employees/scan-qr.
func (h *EmployeesHandler) ScanQR(c *fiber.Ctx) error {
	var req dto.ScanQRRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.QRCode == "" {
		return apperrors.NewValidationError("qrCode required", nil)
	}
	vehicle, err := h.vehicles.ScanQR(c.UserContext(), req.QRCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}

// UpdateQuota handles PUT /api/employees/:id/update-quota where id is the vehicle id.
func (h *EmployeesHandler) UpdateQuota(c *fiber.Ctx) error {
	var req dto.QuotaUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PumpedAmount == nil {
		return apperrors.NewValidationError("pumpedAmount required", nil)
	}
	vehicle, err := h.quota.Consume(c.UserContext(), c.Params("id"), *req.PumpedAmount)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}
