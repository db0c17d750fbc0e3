package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diegonavarro95/parkify/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: code})
}

// writeDomainError maps domain errors onto the response taxonomy. Conflicts
// are expected, recoverable races: the client is told to re-scan rather than
// shown a generic failure.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, "vehicle_not_found")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found")
	case errors.Is(err, domain.ErrPassNotFound):
		writeError(w, http.StatusNotFound, "pass_not_found")
	case errors.Is(err, domain.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "slot_not_found")
	case errors.Is(err, domain.ErrNotificationNotFound):
		writeError(w, http.StatusNotFound, "notification_not_found")
	case errors.Is(err, domain.ErrAlertNotFound):
		writeError(w, http.StatusNotFound, "alert_not_found")
	case errors.Is(err, domain.ErrUserInactive):
		writeError(w, http.StatusForbidden, "user_inactive")
	case errors.Is(err, domain.ErrStaleSuggestion):
		writeError(w, http.StatusConflict, "rescan_required")
	case errors.Is(err, domain.ErrSlotUnavailable):
		writeError(w, http.StatusConflict, "slot_unavailable")
	case errors.Is(err, domain.ErrDuplicateActivePass):
		writeError(w, http.StatusConflict, "active_pass_exists")
	case errors.Is(err, domain.ErrSlotRequired):
		writeError(w, http.StatusUnprocessableEntity, "slot_required")
	case errors.Is(err, domain.ErrInvalidScanPayload):
		writeError(w, http.StatusBadRequest, "invalid_scan_payload")
	case errors.Is(err, domain.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, "invalid_action")
	case errors.Is(err, domain.ErrInvalidSlotStatus):
		writeError(w, http.StatusBadRequest, "invalid_slot_status")
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid_id")
	default:
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
