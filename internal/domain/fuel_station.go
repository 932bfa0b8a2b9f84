package domain

import "time"

// StationStatus is the approval state of a fuel station.
type StationStatus int

const (
	StationStatusPending StationStatus = 0
	StationStatusActive  StationStatus = 1
)

// FuelStation is identified by its name.
type FuelStation struct {
	ID           string
	Name         string
	Address      string
	PhoneNumber  string
	PasswordHash string
	Status       StationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether an admin approved the station.
func (s *FuelStation) Active() bool {
	return s.Status == StationStatusActive
}
