package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type passResponse struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicleId"`
	Folio     string    `json:"folio"`
	Status    string    `json:"status"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	QRURL     string    `json:"qrUrl,omitempty"`
}

func (s *Server) handleGetActivePass(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleId")
	if vehicleID == "" {
		writeError(w, http.StatusBadRequest, "missing_vehicle_id")
		return
	}

	pass, err := s.passes.FindActive(r.Context(), vehicleID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if pass == nil {
		writeError(w, http.StatusNotFound, "pass_not_found")
		return
	}

	writeJSON(w, http.StatusOK, passResponse{
		ID:        pass.ID,
		VehicleID: pass.VehicleID,
		Folio:     pass.Folio,
		Status:    string(pass.Status),
		IssuedAt:  pass.IssuedAt,
		ExpiresAt: pass.ExpiresAt,
		QRURL:     pass.QRURL,
	})
}
