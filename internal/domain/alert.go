package domain

import "time"

// Alert records a vehicle found inside the facility on an expired pass.
// The sweeper creates at most one open alert per pass.
type Alert struct {
	ID        string
	PassID    string
	VehicleID string
	Message   string
	Reviewed  bool
	CreatedAt time.Time
}

// Overstay pairs a vehicle still inside the facility with its expired pass.
type Overstay struct {
	Vehicle Vehicle
	Pass    Pass
}
