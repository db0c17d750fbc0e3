package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/diegonavarro95/parkify/internal/clock"
	"github.com/diegonavarro95/parkify/internal/domain"
)

type fakePassRepo struct {
	passes []domain.Pass
}

func (r *fakePassRepo) FindActivePass(_ context.Context, vehicleID string, now time.Time) (*domain.Pass, error) {
	for i := range r.passes {
		p := r.passes[i]
		if p.VehicleID == vehicleID && p.Usable(now) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePassRepo) HasAnyPass(_ context.Context, vehicleID string) (bool, error) {
	for _, p := range r.passes {
		if p.VehicleID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePassRepo) CreatePass(_ context.Context, pass domain.Pass) error {
	r.passes = append(r.passes, pass)
	return nil
}

func (r *fakePassRepo) ExpireDuePasses(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for i := range r.passes {
		if r.passes[i].Status == domain.PassStatusVigente && !r.passes[i].ExpiresAt.After(now) {
			r.passes[i].Status = domain.PassStatusVencido
			n++
		}
	}
	return n, nil
}

var passNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func TestPassService_ResolveForEntry(t *testing.T) {
	t.Parallel()

	vehicle := domain.Vehicle{ID: "v1", Plate: "ABC-123", Type: domain.VehicleTypeAuto}
	resident := domain.User{ID: "u1", Role: domain.UserRoleResidente, Active: true}
	visitor := domain.User{ID: "u2", Role: domain.UserRoleVisitante, Active: true}

	t.Run("first pass ever is not a renewal", func(t *testing.T) {
		repo := &fakePassRepo{}
		svc := NewPassService(repo, clock.NewFixed(passNow))

		pass, renewed, err := svc.ResolveForEntry(context.Background(), vehicle, resident)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if renewed {
			t.Fatalf("first issuance must not be flagged as renewal")
		}
		if pass.Status != domain.PassStatusVigente {
			t.Fatalf("expected vigente, got %s", pass.Status)
		}
		if want := passNow.Add(180 * 24 * time.Hour); !pass.ExpiresAt.Equal(want) {
			t.Fatalf("resident expiry = %v, want %v", pass.ExpiresAt, want)
		}
	})

	t.Run("usable pass is reused untouched", func(t *testing.T) {
		repo := &fakePassRepo{passes: []domain.Pass{{
			ID: "p1", VehicleID: "v1", Status: domain.PassStatusVigente,
			ExpiresAt: passNow.Add(time.Hour),
		}}}
		svc := NewPassService(repo, clock.NewFixed(passNow))

		pass, renewed, err := svc.ResolveForEntry(context.Background(), vehicle, resident)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if renewed {
			t.Fatalf("reuse is not a renewal")
		}
		if pass.ID != "p1" {
			t.Fatalf("expected existing pass, got %s", pass.ID)
		}
		if len(repo.passes) != 1 {
			t.Fatalf("no new pass should be issued")
		}
	})

	t.Run("expired pass triggers a flagged renewal", func(t *testing.T) {
		repo := &fakePassRepo{passes: []domain.Pass{{
			ID: "p1", VehicleID: "v1", Status: domain.PassStatusVencido,
			ExpiresAt: passNow.Add(-time.Hour),
		}}}
		svc := NewPassService(repo, clock.NewFixed(passNow))

		pass, renewed, err := svc.ResolveForEntry(context.Background(), vehicle, resident)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !renewed {
			t.Fatalf("expected renewal flag")
		}
		if pass.ID == "p1" {
			t.Fatalf("expected a fresh pass")
		}
	})

	t.Run("visitor pass lasts one day", func(t *testing.T) {
		repo := &fakePassRepo{}
		svc := NewPassService(repo, clock.NewFixed(passNow))

		pass, _, err := svc.ResolveForEntry(context.Background(), vehicle, visitor)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if want := passNow.Add(24 * time.Hour); !pass.ExpiresAt.Equal(want) {
			t.Fatalf("visitor expiry = %v, want %v", pass.ExpiresAt, want)
		}
	})
}

func TestPassService_ExpireDue(t *testing.T) {
	t.Parallel()

	repo := &fakePassRepo{passes: []domain.Pass{
		{ID: "p1", VehicleID: "v1", Status: domain.PassStatusVigente, ExpiresAt: passNow.Add(-time.Minute)},
		{ID: "p2", VehicleID: "v2", Status: domain.PassStatusVigente, ExpiresAt: passNow.Add(time.Minute)},
	}}
	svc := NewPassService(repo, clock.NewFixed(passNow))

	n, err := svc.ExpireDue(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired, got %d", n)
	}
	if repo.passes[0].Status != domain.PassStatusVencido {
		t.Fatalf("p1 should be vencido")
	}
	if repo.passes[1].Status != domain.PassStatusVigente {
		t.Fatalf("p2 should stay vigente")
	}

	// Second run finds nothing new.
	n, err = svc.ExpireDue(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if n != 0 {
		t.Fatalf("second sweep expired %d", n)
	}
}

func TestNewFolio(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		folio := newFolio()
		if !strings.HasPrefix(folio, "PV-") {
			t.Fatalf("folio %q missing prefix", folio)
		}
		if len(folio) != len("PV-")+8 {
			t.Fatalf("folio %q has wrong length", folio)
		}
		for _, c := range folio[3:] {
			if !strings.ContainsRune(folioAlphabet, c) {
				t.Fatalf("folio %q contains %q outside the alphabet", folio, c)
			}
		}
		seen[folio] = true
	}
	if len(seen) < 90 {
		t.Fatalf("folios collide too often: %d unique of 100", len(seen))
	}
}
