package item

import (
	"time"

	"github.com/shopspring/decimal"

	"homekeeper/internal/pkg/civil"
)

func init() {
	// Prices travel as JSON numbers, the way web clients send them.
	decimal.MarshalJSONWithoutQuotes = true
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// DefaultMaintenanceInterval applies whenever an item's interval is unset.
const DefaultMaintenanceInterval = 90

// Item is one household possession owned by a single user.
type Item struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"userId"`
	Name                 string          `json:"name"`
	Category             string          `json:"category"`
	Room                 string          `json:"room"`
	PurchaseDate         civil.Date      `json:"purchaseDate"`
	Price                decimal.Decimal `json:"price"`
	Currency             Currency        `json:"currency"`
	Retailer             string          `json:"retailer"`
	WarrantyMonths       int             `json:"warrantyMonths"`
	WarrantyExpiry       civil.Date      `json:"warrantyExpiry"`
	MaintenanceInterval  int             `json:"maintenanceInterval"`
	LastMaintenance      civil.Date      `json:"lastMaintenance"`
	NextMaintenance      civil.Date      `json:"nextMaintenance"`
	SerialNumber         string          `json:"serialNumber,omitempty"`
	ModelNumber          string          `json:"modelNumber,omitempty"`
	ReceiptURL           string          `json:"receiptUrl,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	MarkedForReplacement bool            `json:"markedForReplacement"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// WarrantyExpiry is purchase plus months, clamped to the end of short months.
func WarrantyExpiry(purchase civil.Date, months int) civil.Date {
	return purchase.AddMonths(months)
}

func EffectiveInterval(days int) int {
	if days <= 0 {
		return DefaultMaintenanceInterval
	}
	return days
}

func NextMaintenance(last civil.Date, intervalDays int) civil.Date {
	return last.AddDays(EffectiveInterval(intervalDays))
}

// Touch advances UpdatedAt. Successive writes always get strictly
// increasing stamps, even when the clock stalls or steps back.
func (it *Item) Touch(now time.Time) {
	stamp := now.UTC().Truncate(time.Millisecond)
	if !stamp.After(it.UpdatedAt) {
		stamp = it.UpdatedAt.Add(time.Millisecond)
	}
	it.UpdatedAt = stamp
}

// RecordMaintenance moves the schedule to a service performed on date.
func (it *Item) RecordMaintenance(date civil.Date, now time.Time) {
	it.LastMaintenance = date
	it.NextMaintenance = NextMaintenance(date, it.MaintenanceInterval)
	it.Touch(now)
}

func (it *Item) rederiveWarranty() {
	it.WarrantyExpiry = WarrantyExpiry(it.PurchaseDate, it.WarrantyMonths)
}

func (it *Item) rederiveSchedule() {
	it.NextMaintenance = NextMaintenance(it.LastMaintenance, it.MaintenanceInterval)
}
