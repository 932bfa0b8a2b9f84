package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"

	"github.com/spec-kit/fuel-service/internal/api/dto"
	"github.com/spec-kit/fuel-service/internal/auth"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/service"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// VehiclesHandler serves vehicle profiles and QR codes.
type VehiclesHandler struct {
	vehicles *service.VehicleService
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(vehicles *service.VehicleService) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicles}
}

// Get handles GET /api/vehicles/:registrationNumber.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	vehicle, err := h.vehicles.GetByRegistrationNumber(c.UserContext(), c.Params("registrationNumber"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}

// Update handles PUT /api/vehicles/:registrationNumber.
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	registrationNumber := c.Params("registrationNumber")
	if err := requireVehicleOrAdmin(c, registrationNumber); err != nil {
		return err
	}
	var req dto.VehicleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	vehicle, err := h.vehicles.UpdateProfile(c.UserContext(), registrationNumber, service.VehicleProfileUpdate{
		EngineNumber: req.EngineNumber,
		OwnerName:    req.OwnerName,
		Model:        req.Model,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}

// QRCode handles GET /api/vehicles/:registrationNumber/qr and returns a PNG.
func (h *VehiclesHandler) QRCode(c *fiber.Ctx) error {
	registrationNumber := c.Params("registrationNumber")
	if err := requireVehicleOrAdmin(c, registrationNumber); err != nil {
		return err
	}
	png, payload, err := h.vehicles.QRCode(c.UserContext(), registrationNumber)
	if err != nil {
		return err
	}
	c.Set("X-QR-Payload", payload)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s-qr.png"`, slug.Make(registrationNumber)))
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func requireVehicleOrAdmin(c *fiber.Ctx, registrationNumber string) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	switch principal.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleVehicle:
		if principal.Vehicle.RegistrationNumber == registrationNumber {
			return nil
		}
	}
	return apperrors.NewForbidden("not allowed to access this vehicle")
}
