package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diegonavarro95/parkify/internal/clock"
	"github.com/diegonavarro95/parkify/internal/domain"
)

type fakeSweepRepo struct {
	overstays     []domain.Overstay
	openAlerts    map[string]bool
	alerts        []domain.Alert
	notifications []domain.Notification
	staff         []domain.User

	createAlertErr map[string]error
}

func newFakeSweepRepo() *fakeSweepRepo {
	return &fakeSweepRepo{
		openAlerts:     make(map[string]bool),
		createAlertErr: make(map[string]error),
		staff: []domain.User{
			{ID: "op-1", Role: domain.UserRoleOperador, Active: true},
			{ID: "adm-1", Role: domain.UserRoleAdmin, Active: true},
		},
	}
}

func (r *fakeSweepRepo) ListOverstays(_ context.Context, _ time.Time) ([]domain.Overstay, error) {
	return r.overstays, nil
}

func (r *fakeSweepRepo) HasOpenAlert(_ context.Context, passID string) (bool, error) {
	return r.openAlerts[passID], nil
}

func (r *fakeSweepRepo) CreateAlert(_ context.Context, alert domain.Alert) error {
	if err := r.createAlertErr[alert.PassID]; err != nil {
		return err
	}
	r.openAlerts[alert.PassID] = true
	r.alerts = append(r.alerts, alert)
	return nil
}

func (r *fakeSweepRepo) ListActiveStaff(_ context.Context) ([]domain.User, error) {
	return r.staff, nil
}

func (r *fakeSweepRepo) CreateNotifications(_ context.Context, notifications []domain.Notification) error {
	r.notifications = append(r.notifications, notifications...)
	return nil
}

type stubExpirer struct {
	expired int64
	err     error
}

func (s *stubExpirer) ExpireDue(_ context.Context) (int64, error) {
	return s.expired, s.err
}

func overstayFor(passID, vehicleID, plate string) domain.Overstay {
	return domain.Overstay{
		Vehicle: domain.Vehicle{ID: vehicleID, Plate: plate, Type: domain.VehicleTypeAuto},
		Pass:    domain.Pass{ID: passID, VehicleID: vehicleID, Folio: "PV-" + passID, Status: domain.PassStatusVencido},
	}
}

func TestSweeper_Run(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)

	t.Run("raises one alert per overstaying vehicle", func(t *testing.T) {
		repo := newFakeSweepRepo()
		repo.overstays = []domain.Overstay{
			overstayFor("p1", "v1", "AAA-111"),
			overstayFor("p2", "v2", "BBB-222"),
		}
		sweeper := NewSweeper(repo, &stubExpirer{expired: 2}, clock.NewFixed(now))

		expired, alerts, err := sweeper.Run(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if expired != 2 || alerts != 2 {
			t.Fatalf("got expired=%d alerts=%d", expired, alerts)
		}
		// One notification per staff member per alert.
		if len(repo.notifications) != 4 {
			t.Fatalf("expected 4 notifications, got %d", len(repo.notifications))
		}
	})

	t.Run("open alert suppresses a duplicate", func(t *testing.T) {
		repo := newFakeSweepRepo()
		repo.overstays = []domain.Overstay{overstayFor("p1", "v1", "AAA-111")}
		repo.openAlerts["p1"] = true
		sweeper := NewSweeper(repo, &stubExpirer{}, clock.NewFixed(now))

		_, alerts, err := sweeper.Run(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if alerts != 0 {
			t.Fatalf("expected no new alerts, got %d", alerts)
		}
		if len(repo.alerts) != 0 {
			t.Fatalf("duplicate alert was stored")
		}
	})

	t.Run("lost unique-index race counts as already raised", func(t *testing.T) {
		repo := newFakeSweepRepo()
		repo.overstays = []domain.Overstay{overstayFor("p1", "v1", "AAA-111")}
		repo.createAlertErr["p1"] = domain.ErrDuplicateAlert
		sweeper := NewSweeper(repo, &stubExpirer{}, clock.NewFixed(now))

		_, alerts, err := sweeper.Run(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if alerts != 0 {
			t.Fatalf("expected 0 alerts, got %d", alerts)
		}
	})

	t.Run("one failing vehicle does not stop the batch", func(t *testing.T) {
		repo := newFakeSweepRepo()
		repo.overstays = []domain.Overstay{
			overstayFor("p1", "v1", "AAA-111"),
			overstayFor("p2", "v2", "BBB-222"),
		}
		repo.createAlertErr["p1"] = errors.New("connection reset")
		sweeper := NewSweeper(repo, &stubExpirer{}, clock.NewFixed(now))

		_, alerts, err := sweeper.Run(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if alerts != 1 {
			t.Fatalf("expected the healthy vehicle's alert, got %d", alerts)
		}
		if len(repo.alerts) != 1 || repo.alerts[0].PassID != "p2" {
			t.Fatalf("unexpected alerts: %+v", repo.alerts)
		}
	})

	t.Run("expiry failure aborts the sweep", func(t *testing.T) {
		repo := newFakeSweepRepo()
		sweeper := NewSweeper(repo, &stubExpirer{err: errors.New("db down")}, clock.NewFixed(now))

		_, _, err := sweeper.Run(context.Background())
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}
