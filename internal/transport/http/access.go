package http

import (
	"net/http"
	"time"

	"github.com/diegonavarro95/parkify/internal/app"
	"github.com/diegonavarro95/parkify/internal/domain"
)

type evaluateRequest struct {
	// Scan carries the raw scanner output: a bare vehicle id or a JSON
	// object with an "id" field.
	Scan string `json:"scan"`
}

type slotResponse struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Zone   string `json:"zone,omitempty"`
	Status string `json:"status"`
}

type vehicleResponse struct {
	ID    string `json:"id"`
	Plate string `json:"plate"`
	Type  string `json:"type"`
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`
	Color string `json:"color,omitempty"`
}

type evaluateResponse struct {
	Vehicle         vehicleResponse `json:"vehicle"`
	SuggestedAction string          `json:"suggestedAction"`
	CandidateSlot   *slotResponse   `json:"candidateSlot,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	vehicleID, err := app.DecodeScan(req.Scan)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	eval, err := s.access.Evaluate(r.Context(), vehicleID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := evaluateResponse{
		Vehicle:         mapVehicle(eval.Vehicle),
		SuggestedAction: string(eval.SuggestedAction),
	}
	if eval.CandidateSlot != nil {
		slot := mapSlot(*eval.CandidateSlot)
		resp.CandidateSlot = &slot
	}
	writeJSON(w, http.StatusOK, resp)
}

type confirmRequest struct {
	VehicleID string `json:"vehicleId"`
	Action    string `json:"action"`
	SlotID    string `json:"slotId"`
}

type confirmResponse struct {
	EventID    string        `json:"eventId"`
	Action     string        `json:"action"`
	OccurredAt time.Time     `json:"occurredAt"`
	Vehicle    vehicleResponse `json:"vehicle"`
	PassFolio  string        `json:"passFolio,omitempty"`
	Slot       *slotResponse `json:"slot,omitempty"`
	Renewed    bool          `json:"renewed"`
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return
	}

	var req confirmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.VehicleID == "" || req.Action == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	result, err := s.access.Confirm(r.Context(), app.ConfirmInput{
		VehicleID:  req.VehicleID,
		Action:     domain.AccessType(req.Action),
		SlotID:     req.SlotID,
		OperatorID: claims.UserID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := confirmResponse{
		EventID:    result.Event.ID,
		Action:     string(result.Event.Type),
		OccurredAt: result.Event.OccurredAt,
		Vehicle:    mapVehicle(result.Vehicle),
		PassFolio:  result.Pass.Folio,
		Renewed:    result.Renewed,
	}
	if result.Slot != nil {
		slot := mapSlot(*result.Slot)
		resp.Slot = &slot
	}
	writeJSON(w, http.StatusCreated, resp)
}

func mapVehicle(v domain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:    v.ID,
		Plate: v.Plate,
		Type:  string(v.Type),
		Brand: v.Brand,
		Model: v.Model,
		Color: v.Color,
	}
}

func mapSlot(slot domain.Slot) slotResponse {
	return slotResponse{
		ID:     slot.ID,
		Label:  slot.Label,
		Zone:   slot.Zone,
		Status: string(slot.Status),
	}
}
