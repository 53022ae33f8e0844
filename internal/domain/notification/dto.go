package notification

import (
	"encoding/json"
	"time"

	"homekeeper/internal/domain/item"
)

// UpdatePreferencesRequest is a full replacement; every setting must be
// present. userId is accepted and ignored.
type UpdatePreferencesRequest struct {
	EmailNotifications *bool           `json:"emailNotifications" validate:"required"`
	SMSNotifications   *bool           `json:"smsNotifications" validate:"required"`
	ReminderDays       *int            `json:"reminderDays" validate:"required,gte=0,lte=365"`
	QuietHoursStart    string          `json:"quietHoursStart" validate:"omitempty,clock"`
	QuietHoursEnd      string          `json:"quietHoursEnd" validate:"omitempty,clock"`
	Currency           item.Currency   `json:"currency" validate:"required,oneof=USD INR"`
	UserID             json.RawMessage `json:"userId,omitempty"`
}

func (r *UpdatePreferencesRequest) toPreferences(userID string) *Preferences {
	return &Preferences{
		UserID:             userID,
		EmailNotifications: *r.EmailNotifications,
		SMSNotifications:   *r.SMSNotifications,
		ReminderDays:       *r.ReminderDays,
		QuietHoursStart:    r.QuietHoursStart,
		QuietHoursEnd:      r.QuietHoursEnd,
		Currency:           r.Currency,
	}
}

// RecordRequest describes a delivery reported by the automation platform.
type RecordRequest struct {
	UserID    string     `json:"userId" validate:"required"`
	ItemID    string     `json:"itemId"`
	Type      Type       `json:"type" validate:"required,oneof=maintenance warranty replacement summary"`
	Recipient string     `json:"recipient" validate:"required,max=320"`
	Status    Status     `json:"status" validate:"omitempty,oneof=pending sent failed"`
	Message   string     `json:"message" validate:"required,max=2000"`
	SentAt    *time.Time `json:"sentAt"`
}
