package dto

import (
	"time"

	"github.com/spec-kit/fuel-service/internal/domain"
)

// QuotaUpdateRequest is the body of the quota mutator.
type QuotaUpdateRequest struct {
	PumpedAmount *int `json:"pumpedAmount"`
}

// ScanQRRequest carries a scanned QR payload.
type ScanQRRequest struct {
	QRCode string `json:"qrCode"`
}

// VehicleUpdateRequest payload. Empty fields are left unchanged.
type VehicleUpdateRequest struct {
	EngineNumber string `json:"engineNumber"`
	OwnerName    string `json:"ownerName"`
	Model        string `json:"model"`
}

// VehicleResponse never carries the engine number.
type VehicleResponse struct {
	ID                 string    `json:"id"`
	RegistrationNumber string    `json:"registrationNumber"`
	Model              string    `json:"model"`
	OwnerName          string    `json:"ownerName"`
	VehicleType        string    `json:"vehicleType"`
	FuelType           string    `json:"fuelType"`
	WeeklyQuota        int       `json:"weeklyQuota"`
	QuotaRemaining     int       `json:"quotaRemaining"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NewVehicleResponse maps the domain vehicle.
func NewVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID,
		RegistrationNumber: v.RegistrationNumber,
		Model:              v.Model,
		OwnerName:          v.OwnerName,
		VehicleType:        v.VehicleType,
		FuelType:           v.FuelType,
		WeeklyQuota:        v.WeeklyQuota,
		QuotaRemaining:     v.QuotaRemaining,
		UpdatedAt:          v.UpdatedAt,
	}
}

// StationResponse describes a fuel station with its approval status.
type StationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	Status      int       `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewStationResponse(s *domain.FuelStation) StationResponse {
	return StationResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		PhoneNumber: s.PhoneNumber,
		Status:      int(s.Status),
		CreatedAt:   s.CreatedAt,
	}
}

// EmployeeResponse payload.
type EmployeeResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	FuelStationID string `json:"fuelStationId"`
}

// AdminResponse payload.
type AdminResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// DistributionRequest payload. Timestamp defaults to now.
type DistributionRequest struct {
	FuelStationID string     `json:"fuelStationId"`
	FuelAmount    float64    `json:"fuelAmount"`
	FuelType      string     `json:"fuelType"`
	Timestamp     *time.Time `json:"timestamp"`
}

// DistributionResponse payload.
type DistributionResponse struct {
	ID              string    `json:"id"`
	FuelStationID   string    `json:"fuelStationId"`
	FuelStationName string    `json:"fuelStationName"`
	FuelAmount      float64   `json:"fuelAmount"`
	FuelType        string    `json:"fuelType"`
	Timestamp       time.Time `json:"timestamp"`
}

func NewDistributionResponse(d *domain.Distribution) DistributionResponse {
	return DistributionResponse{
		ID:              d.ID,
		FuelStationID:   d.FuelStationID,
		FuelStationName: d.FuelStationName,
		FuelAmount:      d.FuelAmount,
		FuelType:        d.FuelType,
		Timestamp:       d.Timestamp,
	}
}

// PeriodTotalResponse is one bucket of a time series.
type PeriodTotalResponse struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}

// DMTRecordRequest payload for the motor traffic registry.
type DMTRecordRequest struct {
	RegistrationNumber string `json:"registrationNumber"`
	EngineNumber       string `json:"engineNumber"`
	VehicleType        string `json:"vehicleType"`
	FuelType           string `json:"fuelType"`
	OwnerName          string `json:"ownerName"`
}

// DMTRecordResponse omits the engine number.
type DMTRecordResponse struct {
	RegistrationNumber string `json:"registrationNumber"`
	VehicleType        string `json:"vehicleType"`
	FuelType           string `json:"fuelType"`
	OwnerName          string `json:"ownerName"`
}
