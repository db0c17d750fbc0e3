package app

import (
	"context"

	"github.com/diegonavarro95/parkify/internal/domain"
)

type AlertRepository interface {
	ListAlerts(ctx context.Context, onlyOpen bool, limit int) ([]domain.Alert, error)
	MarkAlertReviewed(ctx context.Context, id string) error
}

type AlertService struct {
	repo AlertRepository
}

func NewAlertService(repo AlertRepository) *AlertService {
	return &AlertService{repo: repo}
}

const defaultAlertLimit = 100

func (s *AlertService) List(ctx context.Context, onlyOpen bool, limit int) ([]domain.Alert, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultAlertLimit
	}
	return s.repo.ListAlerts(ctx, onlyOpen, limit)
}

func (s *AlertService) MarkReviewed(ctx context.Context, id string) error {
	return s.repo.MarkAlertReviewed(ctx, id)
}
