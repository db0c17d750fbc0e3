package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type notificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	EntityID  string    `json:"entityId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_limit")
			return
		}
		limit = parsed
	}

	notifications, err := s.notifications.ListForRecipient(r.Context(), claims.UserID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		item := notificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			Category:  string(n.Category),
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
		if n.EntityID != nil {
			item.EntityID = *n.EntityID
		}
		resp = append(resp, item)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return
	}

	notificationID := chi.URLParam(r, "notificationId")
	if notificationID == "" {
		writeError(w, http.StatusBadRequest, "missing_notification_id")
		return
	}

	if err := s.notifications.MarkRead(r.Context(), notificationID, claims.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
