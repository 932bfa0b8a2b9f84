package domain

import "time"

// DMTRecord is an entry of the motor traffic registry. Only vehicles present
// here may register.
type DMTRecord struct {
	RegistrationNumber string
	EngineNumber       string
	VehicleType        string
	FuelType           string
	OwnerName          string
	CreatedAt          time.Time
}
