package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fuel-service/internal/api/dto"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/service"
	apperrors "github.com/spec-kit/fuel-service/pkg/util/errorutil"
)

// DistributionsHandler records deliveries and serves dashboard figures.
type DistributionsHandler struct {
	distributions *service.DistributionService
}

func NewDistributionsHandler(distributions *service.DistributionService) *DistributionsHandler {
	return &DistributionsHandler{distributions: distributions}
}

// Create handles POST /api/distributions.
func (h *DistributionsHandler) Create(c *fiber.Ctx) error {
	var req dto.DistributionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	in := service.DistributionInput{
		FuelStationID: req.FuelStationID,
		FuelAmount:    req.FuelAmount,
		FuelType:      req.FuelType,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}
	dist, err := h.distributions.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDistributionResponse(dist)})
}

// List handles GET /api/distributions/all.
func (h *DistributionsHandler) List(c *fiber.Ctx) error {
	list, err := h.distributions.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.DistributionResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewDistributionResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// TotalLastThreeDays handles GET /api/distributions/total-fuel-last-three-days.
func (h *DistributionsHandler) TotalLastThreeDays(c *fiber.Ctx) error {
	totals, err := h.distributions.TotalLastDays(c.UserContext(), 3)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": periodTotals(totals)})
}

// TotalLastSixMonths handles GET /api/distributions/total-fuel-last-six-months.
func (h *DistributionsHandler) TotalLastSixMonths(c *fiber.Ctx) error {
	totals, err := h.distributions.TotalLastMonths(c.UserContext(), 6)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": periodTotals(totals)})
}

// TotalToday handles GET /api/distributions/total-distributed-today.
func (h *DistributionsHandler) TotalToday(c *fiber.Ctx) error {
	total, err := h.distributions.TotalToday(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"total": total}})
}

// MostDistributedFuelTypeToday handles GET /api/distributions/most-distributed-fuel-type-today.
func (h *DistributionsHandler) MostDistributedFuelTypeToday(c *fiber.Ctx) error {
	top, err := h.distributions.MostDistributedFuelTypeToday(c.UserContext())
	if err != nil {
		return err
	}
	if top == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"fuelType": top.FuelType, "total": top.Total}})
}

// DistinctStationsToday handles GET /api/distributions/distinct-fuel-stations-today.
func (h *DistributionsHandler) DistinctStationsToday(c *fiber.Ctx) error {
	count, err := h.distributions.DistinctStationsToday(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"count": count}})
}

func periodTotals(totals []domain.PeriodTotal) []dto.PeriodTotalResponse {
	resp := make([]dto.PeriodTotalResponse, 0, len(totals))
	for _, t := range totals {
		resp = append(resp, dto.PeriodTotalResponse{Period: t.Period, Total: t.Total})
	}
	return resp
}
