package domain

import "time"

type VehicleType string

const (
	VehicleTypeAuto VehicleType = "auto"
	VehicleTypeMoto VehicleType = "moto"
)

// Vehicle is immutable once registered except for administrative correction.
type Vehicle struct {
	ID        string
	OwnerID   string
	Plate     string
	Type      VehicleType
	Brand     string
	Model     string
	Color     string
	CreatedAt time.Time
}

// NeedsSlot reports whether entries for this vehicle must be assigned a
// tracked parking slot. Only motorcycles get individually tracked slots.
func (v Vehicle) NeedsSlot() bool {
	return v.Type == VehicleTypeMoto
}
