package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type alertResponse struct {
	ID        string    `json:"id"`
	PassID    string    `json:"passId"`
	VehicleID string    `json:"vehicleId"`
	Message   string    `json:"message"`
	Reviewed  bool      `json:"reviewed"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	onlyOpen := r.URL.Query().Get("open") == "1"

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = parsed
	}

	alerts, err := s.alerts.List(r.Context(), onlyOpen, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		resp = append(resp, alertResponse{
			ID:        a.ID,
			PassID:    a.PassID,
			VehicleID: a.VehicleID,
			Message:   a.Message,
			Reviewed:  a.Reviewed,
			CreatedAt: a.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReviewAlert(w http.ResponseWriter, r *http.Request) {
	alertID := chi.URLParam(r, "alertId")
	if alertID == "" {
		writeError(w, http.StatusBadRequest, "missing_alert_id")
		return
	}

	if err := s.alerts.MarkReviewed(r.Context(), alertID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
