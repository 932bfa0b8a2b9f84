package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fuel-service/internal/api/dto"
	"github.com/spec-kit/fuel-service/internal/service"
)

// StationsHandler exposes station approval endpoints.
type StationsHandler struct {
	stations *service.StationService
}

func NewStationsHandler(stations *service.StationService) *StationsHandler {
	return &StationsHandler{stations: stations}
}

// ListWithStatus handles GET /api/fuel-stations/all-with-status.
func (h *StationsHandler) ListWithStatus(c *fiber.Ctx) error {
	stations, err := h.stations.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.StationResponse, 0, len(stations))
	for i := range stations {
		resp = append(resp, dto.NewStationResponse(&stations[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Activate handles PUT /api/fuel-stations/:id/activate.
func (h *StationsHandler) Activate(c *fiber.Ctx) error {
	station, err := h.stations.Activate(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStationResponse(station)})
}
