package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fuel-service/internal/api/dto"
	"github.com/spec-kit/fuel-service/internal/auth"
	"github.com/spec-kit/fuel-service/internal/service"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and account endpoints for all roles.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

func parseLogin(c *fiber.Ctx) (string, string, error) {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", apperrors.NewValidationError("invalid payload", nil)
	}
	identifier, secret := req.Credentials()
	if identifier == "" || secret == "" {
		return "", "", apperrors.NewValidationError("identifier and secret required", nil)
	}
	return identifier, secret, nil
}

func tokenData(token string, exp time.Time, extra fiber.Map) fiber.Map {
	data := fiber.Map{"token": token, "expires_at": exp}
	for k, v := range extra {
		data[k] = v
	}
	return fiber.Map{"data": data}
}

// LoginAdmin handles POST /api/admins/login.
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	username, password, err := parseLogin(c)
	if err != nil {
		return err
	}
	admin, token, exp, err := h.auth.LoginAdmin(c.UserContext(), username, password)
	if err != nil {
		return err
	}
	return c.JSON(tokenData(token, exp, fiber.Map{
		"admin_id": admin.ID,
		"username": admin.Username,
	}))
}

// LoginEmployee handles POST /api/employees/login.
func (h *AuthHandler) LoginEmployee(c *fiber.Ctx) error {
	username, password, err := parseLogin(c)
	if err != nil {
		return err
	}
	employee, token, exp, err := h.auth.LoginEmployee(c.UserContext(), username, password)
	if err != nil {
		return err
	}
	return c.JSON(tokenData(token, exp, fiber.Map{
		"employee_id":     employee.ID,
		"employee_name":   employee.Username,
		"fuel_station_id": employee.FuelStationID,
	}))
}

// LoginFuelStation handles POST /api/fuel-stations/login.
func (h *AuthHandler) LoginFuelStation(c *fiber.Ctx) error {
	name, password, err := parseLogin(c)
	if err != nil {
		return err
	}
	station, token, exp, err := h.auth.LoginFuelStation(c.UserContext(), name, password)
	if err != nil {
		return err
	}
	return c.JSON(tokenData(token, exp, fiber.Map{
		"fuel_station_id":   station.ID,
		"fuel_station_name": station.Name,
	}))
}

// LoginVehicle handles POST /api/vehicles/login.
func (h *AuthHandler) LoginVehicle(c *fiber.Ctx) error {
	registrationNumber, engineNumber, err := parseLogin(c)
	if err != nil {
		return err
	}
	vehicle, token, exp, err := h.auth.LoginVehicle(c.UserContext(), registrationNumber, engineNumber)
	if err != nil {
		return err
	}
	return c.JSON(tokenData(token, exp, fiber.Map{
		"vehicle_id":          vehicle.ID,
		"registration_number": vehicle.RegistrationNumber,
	}))
}

// RegisterAdmin handles POST /api/admins/register.
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req dto.AdminRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	admin, err := h.auth.RegisterAdmin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AdminResponse{ID: admin.ID, Username: admin.Username},
	})
}

// RegisterEmployee handles POST /api/employees/register.
func (h *AuthHandler) RegisterEmployee(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	var req dto.EmployeeRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	employee, err := h.auth.RegisterEmployee(c.UserContext(), principal, req.Username, req.Password, req.FuelStationID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.EmployeeResponse{
			ID:            employee.ID,
			Username:      employee.Username,
			FuelStationID: employee.FuelStationID,
		},
	})
}

// RegisterFuelStation handles POST /api/fuel-stations/register.
func (h *AuthHandler) RegisterFuelStation(c *fiber.Ctx) error {
	var req dto.StationRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	station, err := h.auth.RegisterFuelStation(c.UserContext(), service.StationRegistration{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStationResponse(station)})
}

// RegisterVehicle handles POST /api/vehicles/register.
func (h *AuthHandler) RegisterVehicle(c *fiber.Ctx) error {
	var req dto.VehicleRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	vehicle, err := h.auth.RegisterVehicle(c.UserContext(), service.VehicleRegistration{
		RegistrationNumber: req.RegistrationNumber,
		EngineNumber:       req.EngineNumber,
		Model:              req.Model,
		OwnerName:          req.OwnerName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": dto.PrincipalResponse{
		Role:       string(principal.Role),
		Identifier: principal.Identifier,
		ID:         principal.ID(),
	}})
}

// ChangePassword handles POST /api/auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.auth.ChangePassword(c.UserContext(), principal, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}
