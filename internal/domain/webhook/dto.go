package webhook

import (
	"homekeeper/internal/domain/item"
	"homekeeper/internal/domain/notification"
)

// UpdateConfigRequest sets the new-item URL; "" clears it.
type UpdateConfigRequest struct {
	NewItemURL string `json:"newItemUrl" validate:"omitempty,http_url,max=2000"`
}

// outboundPayload is what a user's automation URL receives.
type outboundPayload struct {
	Event  string    `json:"event"`
	UserID string    `json:"userId"`
	Item   item.Item `json:"item"`
	SentAt string    `json:"sentAt"`
}

// Inbound bodies come from an external platform and are decoded leniently.

type itemPayload struct {
	UserID string    `json:"userId"`
	Item   item.Item `json:"item"`
}

// deliveryPayload reports a reminder or alert the platform sent to a user.
// Without a userId nothing is recorded.
type deliveryPayload struct {
	UserID    string              `json:"userId"`
	ItemID    string              `json:"itemId"`
	Recipient string              `json:"recipient"`
	Message   string              `json:"message"`
	Status    notification.Status `json:"status"`
}

type reportPayload struct {
	UserID string `json:"userId"`
}
