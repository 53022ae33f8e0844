package webhook

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event names double as the inbound endpoint names.
const (
	EventNewItem             = "new-item"
	EventMaintenanceReminder = "maintenance-reminder"
	EventWarrantyAlert       = "warranty-alert"
	EventFindReplacement     = "find-replacement"
	EventAnnualReport        = "annual-report"
)

type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// LogEntry records one webhook dispatch or receipt.
type LogEntry struct {
	ID         string    `json:"id"`
	Endpoint   string    `json:"endpoint"`
	Direction  Direction `json:"direction"`
	UserID     string    `json:"userId,omitempty"`
	Status     string    `json:"status"`
	StatusCode int       `json:"statusCode,omitempty"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// Config holds the per-user outbound destinations.
type Config struct {
	NewItemURL string `json:"newItemUrl"`
}

// Offer is one candidate replacement for an item.
type Offer struct {
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Source string          `json:"source"`
	URL    string          `json:"url"`
	Rating float64         `json:"rating"`
}
