package domain

import "time"

type NotificationCategory string

const (
	NotificationCategoryAcceso NotificationCategory = "acceso"
	NotificationCategoryAlerta NotificationCategory = "alerta"
)

// Notification is a durable per-recipient record written in bulk as a side
// effect of a confirmed access event or a sweeper alert.
type Notification struct {
	ID          string
	RecipientID string
	Title       string
	Body        string
	Category    NotificationCategory
	// EntityID optionally references the triggering vehicle or alert.
	EntityID  *string
	Read      bool
	CreatedAt time.Time
}
