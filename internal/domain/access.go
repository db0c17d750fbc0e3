package domain

import "time"

type AccessType string

const (
	AccessTypeEntrada AccessType = "entrada"
	AccessTypeSalida  AccessType = "salida"
)

// AccessEvent is one recorded entry or exit tied to a pass. Events are
// append-only and, per pass, strictly alternate entrada/salida starting with
// entrada when read in timestamp order.
type AccessEvent struct {
	ID         string
	PassID     string
	Type       AccessType
	OperatorID string
	SlotID     *string
	OccurredAt time.Time
}

// Inside derives the "currently inside" state from the latest event for a
// pass: inside iff the latest event is an entrada. A nil latest event means
// the vehicle never entered.
func Inside(latest *AccessEvent) bool {
	return latest != nil && latest.Type == AccessTypeEntrada
}

// NextAction is the action a gate scan should suggest given the latest event
// for the vehicle across all its passes.
func NextAction(latest *AccessEvent) AccessType {
	if Inside(latest) {
		return AccessTypeSalida
	}
	return AccessTypeEntrada
}
