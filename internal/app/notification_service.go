package app

import (
	"context"

	"github.com/diegonavarro95/parkify/internal/domain"
)

type NotificationRepository interface {
	ListNotificationsByRecipient(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id, recipientID string) error
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

const defaultNotificationLimit = 50

func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultNotificationLimit
	}
	return s.repo.ListNotificationsByRecipient(ctx, recipientID, limit)
}

// MarkRead flags one notification as read. The recipient filter keeps users
// from acknowledging each other's notifications.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.repo.MarkNotificationRead(ctx, id, recipientID)
}
