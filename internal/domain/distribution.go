package domain

import "time"

// Distribution records fuel delivered to a station.
type Distribution struct {
	ID              string
	FuelStationID   string
	FuelStationName string
	FuelAmount      float64
	FuelType        string
	Timestamp       time.Time
	CreatedAt       time.Time
}

// PeriodTotal is an aggregated amount for a day or month bucket.
type PeriodTotal struct {
	Period string
	Total  float64
}

// FuelTypeTotal is the amount distributed for one fuel type.
type FuelTypeTotal struct {
	FuelType string
	Total    float64
}
