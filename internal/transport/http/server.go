package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diegonavarro95/parkify/internal/app"
	"github.com/diegonavarro95/parkify/internal/auth"
	"github.com/diegonavarro95/parkify/internal/config"
	"github.com/diegonavarro95/parkify/internal/domain"
)

// AccessGate is the orchestrator surface the gate endpoints call.
type AccessGate interface {
	Evaluate(ctx context.Context, vehicleID string) (app.Evaluation, error)
	Confirm(ctx context.Context, in app.ConfirmInput) (app.ConfirmResult, error)
}

type SlotLister interface {
	ListByStatus(ctx context.Context, status domain.SlotStatus) ([]domain.Slot, error)
	ListAll(ctx context.Context) ([]domain.Slot, error)
}

type PassFinder interface {
	FindActive(ctx context.Context, vehicleID string) (*domain.Pass, error)
}

type NotificationReader interface {
	ListForRecipient(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

type AlertReader interface {
	List(ctx context.Context, onlyOpen bool, limit int) ([]domain.Alert, error)
	MarkReviewed(ctx context.Context, id string) error
}

type Server struct {
	cfg           config.Config
	access        AccessGate
	slots         SlotLister
	passes        PassFinder
	notifications NotificationReader
	alerts        AlertReader
}

func NewServer(cfg config.Config, access AccessGate, slots SlotLister, passes PassFinder, notifications NotificationReader, alerts AlertReader) *Server {
	return &Server{
		cfg:           cfg,
		access:        access,
		slots:         slots,
		passes:        passes,
		notifications: notifications,
		alerts:        alerts,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.With(s.authMiddleware, s.requireRole("operador", "admin")).Post("/access/evaluate", s.handleEvaluate)
	r.With(s.authMiddleware, s.requireRole("operador", "admin")).Post("/access/confirm", s.handleConfirm)
	r.With(s.authMiddleware, s.requireRole("operador", "admin")).Get("/slots", s.handleListSlots)
	r.With(s.authMiddleware, s.requireRole("operador", "admin")).Get("/passes/{vehicleId}/active", s.handleGetActivePass)
	r.With(s.authMiddleware).Get("/notifications", s.handleListNotifications)
	r.With(s.authMiddleware).Post("/notifications/{notificationId}/read", s.handleMarkNotificationRead)
	r.With(s.authMiddleware, s.requireRole("admin")).Get("/alerts", s.handleListAlerts)
	r.With(s.authMiddleware, s.requireRole("admin")).Post("/alerts/{alertId}/review", s.handleReviewAlert)

	return r
}

// Auth

type claimsKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFromContext(r.Context())
			if claims == nil {
				writeError(w, http.StatusUnauthorized, "missing_token")
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "forbidden")
		})
	}
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*auth.Claims)
	return claims
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
