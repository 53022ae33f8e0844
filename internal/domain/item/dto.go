package item

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"homekeeper/internal/pkg/civil"
	"homekeeper/internal/pkg/validator"
)

// CreateItemRequest mirrors the fields a client fills in. warrantyExpiry and
// nextMaintenance are accepted for compatibility and always re-derived.
type CreateItemRequest struct {
	Name                 string           `json:"name" validate:"required,notblank,max=200"`
	Category             string           `json:"category" validate:"required,notblank,max=100"`
	Room                 string           `json:"room" validate:"required,notblank,max=100"`
	PurchaseDate         civil.Date       `json:"purchaseDate"`
	Price                *decimal.Decimal `json:"price" validate:"required"`
	Currency             Currency         `json:"currency" validate:"omitempty,oneof=USD INR"`
	Retailer             string           `json:"retailer" validate:"max=200"`
	WarrantyMonths       int              `json:"warrantyMonths" validate:"gte=0,lte=1200"`
	WarrantyExpiry       json.RawMessage  `json:"warrantyExpiry,omitempty"`
	MaintenanceInterval  int              `json:"maintenanceInterval" validate:"gte=0,lte=3650"`
	LastMaintenance      civil.Date       `json:"lastMaintenance"`
	NextMaintenance      json.RawMessage  `json:"nextMaintenance,omitempty"`
	SerialNumber         string           `json:"serialNumber" validate:"max=100"`
	ModelNumber          string           `json:"modelNumber" validate:"max=100"`
	ReceiptURL           string           `json:"receiptUrl" validate:"max=2000"`
	Notes                string           `json:"notes" validate:"max=2000"`
	MarkedForReplacement bool             `json:"markedForReplacement"`
}

func (r *CreateItemRequest) Validate() error {
	if err := validator.Check(r); err != nil {
		return err
	}
	if r.PurchaseDate.IsZero() {
		return ErrPurchaseDateZero
	}
	if r.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// UpdateItemRequest is a partial patch: nil fields keep their stored value.
// Server-owned fields are accepted so clients can send back a whole item,
// but their values are ignored.
type UpdateItemRequest struct {
	Name                 *string          `json:"name" validate:"omitnil,notblank,max=200"`
	Category             *string          `json:"category" validate:"omitnil,notblank,max=100"`
	Room                 *string          `json:"room" validate:"omitnil,notblank,max=100"`
	PurchaseDate         *civil.Date      `json:"purchaseDate"`
	Price                *decimal.Decimal `json:"price"`
	Currency             *Currency        `json:"currency" validate:"omitnil,oneof=USD INR"`
	Retailer             *string          `json:"retailer" validate:"omitnil,max=200"`
	WarrantyMonths       *int             `json:"warrantyMonths" validate:"omitnil,gte=0,lte=1200"`
	MaintenanceInterval  *int             `json:"maintenanceInterval" validate:"omitnil,gte=0,lte=3650"`
	LastMaintenance      *civil.Date      `json:"lastMaintenance"`
	SerialNumber         *string          `json:"serialNumber" validate:"omitnil,max=100"`
	ModelNumber          *string          `json:"modelNumber" validate:"omitnil,max=100"`
	ReceiptURL           *string          `json:"receiptUrl" validate:"omitnil,max=2000"`
	Notes                *string          `json:"notes" validate:"omitnil,max=2000"`
	MarkedForReplacement *bool            `json:"markedForReplacement"`

	ID              json.RawMessage `json:"id,omitempty"`
	UserID          json.RawMessage `json:"userId,omitempty"`
	CreatedAt       json.RawMessage `json:"createdAt,omitempty"`
	UpdatedAt       json.RawMessage `json:"updatedAt,omitempty"`
	WarrantyExpiry  json.RawMessage `json:"warrantyExpiry,omitempty"`
	NextMaintenance json.RawMessage `json:"nextMaintenance,omitempty"`
}

func (r *UpdateItemRequest) Validate() error {
	if err := validator.Check(r); err != nil {
		return err
	}
	if r.PurchaseDate != nil && r.PurchaseDate.IsZero() {
		return ErrPurchaseDateZero
	}
	if r.LastMaintenance != nil && r.LastMaintenance.IsZero() {
		return ErrLastMaintZero
	}
	if r.Price != nil && r.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// apply merges the patch into it and re-derives whatever depends on a
// changed input.
func (r *UpdateItemRequest) apply(it *Item) {
	setTrimmed(&it.Name, r.Name)
	setTrimmed(&it.Category, r.Category)
	setTrimmed(&it.Room, r.Room)
	setString(&it.Retailer, r.Retailer)
	setString(&it.SerialNumber, r.SerialNumber)
	setString(&it.ModelNumber, r.ModelNumber)
	setString(&it.ReceiptURL, r.ReceiptURL)
	setString(&it.Notes, r.Notes)

	if r.Price != nil {
		it.Price = *r.Price
	}
	if r.Currency != nil {
		it.Currency = *r.Currency
	}
	if r.MarkedForReplacement != nil {
		it.MarkedForReplacement = *r.MarkedForReplacement
	}

	if r.PurchaseDate != nil || r.WarrantyMonths != nil {
		if r.PurchaseDate != nil {
			it.PurchaseDate = *r.PurchaseDate
		}
		if r.WarrantyMonths != nil {
			it.WarrantyMonths = *r.WarrantyMonths
		}
		it.rederiveWarranty()
	}

	if r.LastMaintenance != nil || r.MaintenanceInterval != nil {
		if r.LastMaintenance != nil {
			it.LastMaintenance = *r.LastMaintenance
		}
		if r.MaintenanceInterval != nil {
			it.MaintenanceInterval = *r.MaintenanceInterval
		}
		it.rederiveSchedule()
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

type ReplacementRequest struct {
	Marked *bool `json:"marked"`
}
