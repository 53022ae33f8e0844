package notification

import "homekeeper/internal/domain/item"

// Preferences is the single settings record of a user.
type Preferences struct {
	UserID             string        `json:"userId"`
	EmailNotifications bool          `json:"emailNotifications"`
	SMSNotifications   bool          `json:"smsNotifications"`
	ReminderDays       int           `json:"reminderDays"`
	QuietHoursStart    string        `json:"quietHoursStart,omitempty"`
	QuietHoursEnd      string        `json:"quietHoursEnd,omitempty"`
	Currency           item.Currency `json:"currency"`
}

// GetDefaultPreferences returns the settings of a user who never saved any.
func GetDefaultPreferences(userID string) *Preferences {
	return &Preferences{
		UserID:             userID,
		EmailNotifications: true,
		SMSNotifications:   false,
		ReminderDays:       7,
		QuietHoursStart:    "22:00",
		QuietHoursEnd:      "08:00",
		Currency:           item.CurrencyUSD,
	}
}
