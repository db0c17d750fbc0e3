package app

import (
	"crypto/rand"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// Folio alphabet skips ambiguous characters (0/O, 1/I/L) so gate staff can
// read codes back over the radio.
const folioAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

func newFolio() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "PV-" + uuid.NewString()[:8]
	}
	for i := range b {
		b[i] = folioAlphabet[int(b[i])%len(folioAlphabet)]
	}
	return "PV-" + string(b)
}
