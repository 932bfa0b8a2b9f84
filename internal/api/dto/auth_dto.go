package dto

import "time"

// LoginRequest accepts the generic identifier/secret pair or the
// role-specific field names.
type LoginRequest struct {
	Identifier         string `json:"identifier"`
	Secret             string `json:"secret"`
	Username           string `json:"username"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	Password           string `json:"password"`
	EngineNumber       string `json:"engineNumber"`
}

// Credentials returns the identifier and secret, preferring the generic fields.
func (r LoginRequest) Credentials() (string, string) {
	identifier := firstNonEmpty(r.Identifier, r.Username, r.Name, r.RegistrationNumber)
	secret := firstNonEmpty(r.Secret, r.Password, r.EngineNumber)
	return identifier, secret
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdminRegisterRequest payload.
type AdminRegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// EmployeeRegisterRequest payload. FuelStationID may be omitted by a station
// registering its own staff.
type EmployeeRegisterRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	FuelStationID string `json:"fuelStationId"`
}

// StationRegisterRequest payload.
type StationRegisterRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// VehicleRegisterRequest payload.
type VehicleRegisterRequest struct {
	RegistrationNumber string `json:"registrationNumber"`
	EngineNumber       string `json:"engineNumber"`
	Model              string `json:"model"`
	OwnerName          string `json:"ownerName"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PrincipalResponse describes the caller of GET /api/me.
type PrincipalResponse struct {
	Role       string `json:"role"`
	Identifier string `json:"identifier"`
	ID         string `json:"id"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
