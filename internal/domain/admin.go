package domain

import "time"

// Admin manages stations, distributions and the registry.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
