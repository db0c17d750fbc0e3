package app

import (
	"context"
	"time"

	"github.com/diegonavarro95/parkify/internal/clock"
	"github.com/diegonavarro95/parkify/internal/domain"
)

type PassRepository interface {
	FindActivePass(ctx context.Context, vehicleID string, now time.Time) (*domain.Pass, error)
	HasAnyPass(ctx context.Context, vehicleID string) (bool, error)
	CreatePass(ctx context.Context, pass domain.Pass) error
	ExpireDuePasses(ctx context.Context, now time.Time) (int64, error)
}

// Pass durations by owner category. Verified community members get a
// long-lived pass, everyone else a single-day one.
const (
	residentPassTTL = 180 * 24 * time.Hour
	visitorPassTTL  = 24 * time.Hour
)

type PassService struct {
	repo  PassRepository
	clock clock.Clock
}

func NewPassService(repo PassRepository, clk clock.Clock) *PassService {
	return &PassService{repo: repo, clock: clk}
}

// FindActive returns the usable pass for a vehicle, or nil.
func (s *PassService) FindActive(ctx context.Context, vehicleID string) (*domain.Pass, error) {
	return s.repo.FindActivePass(ctx, vehicleID, s.clock.Now())
}

// ResolveForEntry returns the vehicle's usable pass, issuing one when none
// exists. The second return reports a renewal: a fresh pass was issued while
// an earlier, no longer usable pass was on record. An expired pass never
// blocks the entry; the gate policy is to renew transparently and tell the
// operator.
func (s *PassService) ResolveForEntry(ctx context.Context, vehicle domain.Vehicle, owner domain.User) (domain.Pass, bool, error) {
	now := s.clock.Now()

	existing, err := s.repo.FindActivePass(ctx, vehicle.ID, now)
	if err != nil {
		return domain.Pass{}, false, err
	}
	if existing != nil {
		return *existing, false, nil
	}

	hadPrior, err := s.repo.HasAnyPass(ctx, vehicle.ID)
	if err != nil {
		return domain.Pass{}, false, err
	}

	pass, err := s.issue(ctx, vehicle, owner, now)
	if err != nil {
		return domain.Pass{}, false, err
	}
	return pass, hadPrior, nil
}

// Issue creates a pass with a policy-computed expiry. Fails with
// ErrDuplicateActivePass when a concurrent issuance won the race; callers
// inside a transaction roll back and retry via re-scan.
func (s *PassService) Issue(ctx context.Context, vehicle domain.Vehicle, owner domain.User) (domain.Pass, error) {
	return s.issue(ctx, vehicle, owner, s.clock.Now())
}

func (s *PassService) issue(ctx context.Context, vehicle domain.Vehicle, owner domain.User, now time.Time) (domain.Pass, error) {
	ttl := visitorPassTTL
	if owner.Role == domain.UserRoleResidente || owner.Role == domain.UserRoleAdmin {
		ttl = residentPassTTL
	}

	pass := domain.Pass{
		ID:        newID(),
		VehicleID: vehicle.ID,
		Folio:     newFolio(),
		Status:    domain.PassStatusVigente,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	if err := s.repo.CreatePass(ctx, pass); err != nil {
		return domain.Pass{}, err
	}
	return pass, nil
}

// ExpireDue bulk-transitions vigente passes past their expiry to vencido.
// Idempotent: a second run finds nothing new to expire.
func (s *PassService) ExpireDue(ctx context.Context) (int64, error) {
	return s.repo.ExpireDuePasses(ctx, s.clock.Now())
}
