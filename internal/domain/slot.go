package domain

type SlotStatus string

const (
	SlotStatusDisponible    SlotStatus = "disponible"
	SlotStatusOcupado       SlotStatus = "ocupado"
	SlotStatusMantenimiento SlotStatus = "mantenimiento"
)

// Slot is a physical, individually tracked motorcycle parking space.
// Invariant: a slot is ocupado iff AccessEventID references an entrada event
// with no later matching salida for the same pass. Both transitions happen
// only inside the access service's confirm transaction.
type Slot struct {
	ID            string
	Label         string
	Zone          string
	Status        SlotStatus
	AccessEventID *string
}
