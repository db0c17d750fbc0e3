package app

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/diegonavarro95/parkify/internal/domain"
)

// DecodeScan extracts the vehicle id from a scanned credential. Gate readers
// produce either the bare id or a JSON object carrying at least an "id"
// field; both forms are accepted.
func DecodeScan(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", domain.ErrInvalidScanPayload
	}

	if strings.HasPrefix(payload, "{") {
		var decoded struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
			return "", domain.ErrInvalidScanPayload
		}
		payload = strings.TrimSpace(decoded.ID)
	}

	if _, err := uuid.Parse(payload); err != nil {
		return "", domain.ErrInvalidScanPayload
	}
	return payload, nil
}
