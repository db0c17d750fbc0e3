package domain

import "time"

type PassStatus string

const (
	PassStatusVigente    PassStatus = "vigente"
	PassStatusVencido    PassStatus = "vencido"
	PassStatusInvalidado PassStatus = "invalidado"
)

// Pass is a time-bounded authorization for one vehicle to enter the facility.
// At most one pass per vehicle may be vigente with a future expiry at any
// instant; the access service enforces this by reusing an existing valid pass
// instead of issuing a new one.
type Pass struct {
	ID        string
	VehicleID string
	Folio     string
	Status    PassStatus
	IssuedAt  time.Time
	ExpiresAt time.Time
	// QRURL points at the rendered pass artifact in external storage.
	// Opaque to this service.
	QRURL string
}

// Usable reports whether the pass authorizes an entry at the given instant.
// A vigente pass whose expiry already elapsed is not usable even if the
// sweeper has not yet marked it vencido.
func (p Pass) Usable(now time.Time) bool {
	return p.Status == PassStatusVigente && p.ExpiresAt.After(now)
}
