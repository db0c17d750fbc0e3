package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/diegonavarro95/parkify/internal/clock"
	"github.com/diegonavarro95/parkify/internal/domain"
)

type SweepRepository interface {
	ListOverstays(ctx context.Context, now time.Time) ([]domain.Overstay, error)
	HasOpenAlert(ctx context.Context, passID string) (bool, error)
	CreateAlert(ctx context.Context, alert domain.Alert) error
	ListActiveStaff(ctx context.Context) ([]domain.User, error)
	CreateNotifications(ctx context.Context, notifications []domain.Notification) error
}

// PassExpirer is the slice of the pass service the sweeper uses.
type PassExpirer interface {
	ExpireDue(ctx context.Context) (int64, error)
}

// Sweeper reconciles pass expiry against live occupancy: it marks due passes
// vencido and raises one open alert per expired pass whose vehicle is still
// inside. Per-vehicle failures are logged and skipped; the sweep is a batch
// job, not a transaction.
type Sweeper struct {
	repo   SweepRepository
	passes PassExpirer
	clock  clock.Clock
}

func NewSweeper(repo SweepRepository, passes PassExpirer, clk clock.Clock) *Sweeper {
	return &Sweeper{repo: repo, passes: passes, clock: clk}
}

// Run executes one sweep and returns how many passes were expired and how
// many alerts were created.
func (s *Sweeper) Run(ctx context.Context) (expired int64, alerts int, err error) {
	expired, err = s.passes.ExpireDue(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("expire due passes: %w", err)
	}

	now := s.clock.Now()
	overstays, err := s.repo.ListOverstays(ctx, now)
	if err != nil {
		return expired, 0, fmt.Errorf("list overstays: %w", err)
	}

	for _, stay := range overstays {
		created, alertErr := s.raiseAlert(ctx, stay)
		if alertErr != nil {
			log.Printf("sweep: alert for vehicle %s (pass %s) failed: %v", stay.Vehicle.ID, stay.Pass.ID, alertErr)
			continue
		}
		if created {
			alerts++
		}
	}
	return expired, alerts, nil
}

func (s *Sweeper) raiseAlert(ctx context.Context, stay domain.Overstay) (bool, error) {
	exists, err := s.repo.HasOpenAlert(ctx, stay.Pass.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	now := s.clock.Now()
	alert := domain.Alert{
		ID:        newID(),
		PassID:    stay.Pass.ID,
		VehicleID: stay.Vehicle.ID,
		Message:   fmt.Sprintf("Vehículo %s sigue dentro con pase %s vencido", stay.Vehicle.Plate, stay.Pass.Folio),
		CreatedAt: now,
	}
	if err := s.repo.CreateAlert(ctx, alert); err != nil {
		// Two sweepers racing on the same pass: the unique index wins,
		// treat the duplicate as already raised.
		if err == domain.ErrDuplicateAlert {
			return false, nil
		}
		return false, err
	}

	if err := s.notifyAlert(ctx, alert); err != nil {
		log.Printf("sweep: notify alert %s: %v", alert.ID, err)
	}
	return true, nil
}

func (s *Sweeper) notifyAlert(ctx context.Context, alert domain.Alert) error {
	staff, err := s.repo.ListActiveStaff(ctx)
	if err != nil {
		return err
	}
	notifications := make([]domain.Notification, 0, len(staff))
	for _, member := range staff {
		notifications = append(notifications, domain.Notification{
			ID:          newID(),
			RecipientID: member.ID,
			Title:       "Pase vencido dentro de la privada",
			Body:        alert.Message,
			Category:    domain.NotificationCategoryAlerta,
			EntityID:    &alert.ID,
			CreatedAt:   alert.CreatedAt,
		})
	}
	if len(notifications) == 0 {
		return nil
	}
	return s.repo.CreateNotifications(ctx, notifications)
}
