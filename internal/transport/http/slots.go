package http

import (
	"net/http"

	"github.com/diegonavarro95/parkify/internal/domain"
)

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")

	var (
		slots []domain.Slot
		err   error
	)
	if state == "" {
		slots, err = s.slots.ListAll(r.Context())
	} else {
		slots, err = s.slots.ListByStatus(r.Context(), domain.SlotStatus(state))
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		resp = append(resp, mapSlot(slot))
	}
	writeJSON(w, http.StatusOK, resp)
}
