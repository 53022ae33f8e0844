package notification

import (
	"time"
)

// Type is the kind of event a notification reported.
type Type string

const (
	TypeMaintenance Type = "maintenance"
	TypeWarranty    Type = "warranty"
	TypeReplacement Type = "replacement"
	TypeSummary     Type = "summary"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Notification logs one message the automation platform sent (or tried to
// send) to a user.
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	ItemID    string     `json:"itemId,omitempty"`
	Type      Type       `json:"type"`
	Recipient string     `json:"recipient"`
	Status    Status     `json:"status"`
	Message   string     `json:"message"`
	SentAt    *time.Time `json:"sentAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// SortTime is when the notification went out, or when it was logged if it
// never did.
func (n *Notification) SortTime() time.Time {
	if n.SentAt != nil {
		return *n.SentAt
	}
	return n.CreatedAt
}
