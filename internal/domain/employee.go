package domain

import "time"

// Employee is a pump attendant bound to one fuel station.
type Employee struct {
	ID            string
	Username      string
	PasswordHash  string
	FuelStationID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
