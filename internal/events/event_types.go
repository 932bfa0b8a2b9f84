package events

import (
	"time"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuotaConsumed       EventType = "quota.consumed"
	EventQuotaReset          EventType = "quota.reset"
	EventDistributionCreated EventType = "distribution.created"
	EventStationActivated    EventType = "station.activated"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role       domain.Role `json:"role,omitempty"`
	Identifier string      `json:"identifier,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// QuotaConsumedPayload payload.
type QuotaConsumedPayload struct {
	RegistrationNumber string `json:"registration_number"`
	PumpedAmount       int    `json:"pumped_amount"`
	QuotaRemaining     int    `json:"quota_remaining"`
	FuelStationID      string `json:"fuel_station_id,omitempty"`
}

// QuotaResetPayload payload.
type QuotaResetPayload struct {
	VehiclesReset int64 `json:"vehicles_reset"`
}

// DistributionCreatedPayload payload.
type DistributionCreatedPayload struct {
	FuelStationID string  `json:"fuel_station_id"`
	FuelAmount    float64 `json:"fuel_amount"`
	FuelType      string  `json:"fuel_type"`
}

// StationActivatedPayload payload.
type StationActivatedPayload struct {
	Name string `json:"name"`
}
