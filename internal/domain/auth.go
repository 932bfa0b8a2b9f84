package domain

import "time"

// Role tags the table a principal was resolved from.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleEmployee    Role = "EMPLOYEE"
	RoleFuelStation Role = "FUEL_STATION"
	RoleVehicle     Role = "VEHICLE"
)

// Token describes an issued access token. Role is never embedded; it is
// re-derived on every request.
type Token struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
