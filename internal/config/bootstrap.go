package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bootstrap is the seed data applied at startup.
type Bootstrap struct {
	Admins []BootstrapAdmin     `yaml:"admins"`
	Quotas map[string]int       `yaml:"quotas"`
	DMT    []BootstrapDMTRecord `yaml:"dmt"`
}

// BootstrapAdmin seeds an administrator account.
type BootstrapAdmin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// BootstrapDMTRecord seeds the motor traffic registry.
type BootstrapDMTRecord struct {
	RegistrationNumber string `yaml:"registration_number"`
	EngineNumber       string `yaml:"engine_number"`
	VehicleType        string `yaml:"vehicle_type"`
	FuelType           string `yaml:"fuel_type"`
	OwnerName          string `yaml:"owner_name"`
}

// LoadBootstrap parses the seed file. An empty path yields an empty seed.
func LoadBootstrap(path string) (*Bootstrap, error) {
	b := &Bootstrap{Quotas: map[string]int{}}
	if path == "" {
		return b, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bootstrap file: %w", err)
	}
	if err := yaml.Unmarshal(raw, b); err != nil {
		return nil, fmt.Errorf("parse bootstrap file: %w", err)
	}
	if b.Quotas == nil {
		b.Quotas = map[string]int{}
	}
	for i, admin := range b.Admins {
		if admin.Username == "" || admin.Password == "" {
			return nil, fmt.Errorf("bootstrap admin #%d: username and password required", i)
		}
	}
	for vehicleType, quota := range b.Quotas {
		if quota < 0 {
			return nil, fmt.Errorf("bootstrap quota for %q is negative", vehicleType)
		}
	}
	return b, nil
}
