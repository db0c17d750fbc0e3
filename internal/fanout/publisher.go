package fanout

import (
	"context"
	"time"
)

// Event is the payload broadcast to live observers after a confirmed access.
type Event struct {
	Type        string    `json:"type"`
	Plate       string    `json:"plate"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	SlotLabel   string    `json:"slotLabel,omitempty"`
}

// Publisher delivers events at most once, best effort. Publish failures never
// affect the write the event reports.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
