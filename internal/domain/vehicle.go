package domain

import "time"

// Vehicle carries its weekly fuel allowance. EngineNumberHash is the login
// secret.
type Vehicle struct {
	ID                 string
	RegistrationNumber string
	EngineNumberHash   string
	Model              string
	OwnerName          string
	VehicleType        string
	FuelType           string
	WeeklyQuota        int
	QuotaRemaining     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
