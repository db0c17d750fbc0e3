package app

import (
	"context"

	"github.com/diegonavarro95/parkify/internal/domain"
)

type SlotRepository interface {
	ListSlotsByStatus(ctx context.Context, status domain.SlotStatus) ([]domain.Slot, error)
	ListSlots(ctx context.Context) ([]domain.Slot, error)
}

// SlotService is the read-only projection of the slot registry offered to
// operators. Occupancy writes happen only inside the access service's
// transaction.
type SlotService struct {
	repo SlotRepository
}

func NewSlotService(repo SlotRepository) *SlotService {
	return &SlotService{repo: repo}
}

func (s *SlotService) ListByStatus(ctx context.Context, status domain.SlotStatus) ([]domain.Slot, error) {
	switch status {
	case domain.SlotStatusDisponible, domain.SlotStatusOcupado, domain.SlotStatusMantenimiento:
		return s.repo.ListSlotsByStatus(ctx, status)
	default:
		return nil, domain.ErrInvalidSlotStatus
	}
}

func (s *SlotService) ListAll(ctx context.Context) ([]domain.Slot, error) {
	return s.repo.ListSlots(ctx)
}
