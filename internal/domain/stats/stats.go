// Package stats derives dashboard figures from an item list. Nothing here
// touches storage.
package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"homekeeper/internal/domain/item"
	"homekeeper/internal/pkg/apperr"
	"homekeeper/internal/pkg/civil"
)

const (
	ExpiringSoonDays = 30
	UpcomingDays     = 7
)

type Stats struct {
	TotalItems             int             `json:"totalItems"`
	WarrantiesExpiringSoon int             `json:"warrantiesExpiringSoon"`
	MaintenanceUpcoming    int             `json:"maintenanceUpcoming"`
	TotalValue             decimal.Decimal `json:"totalValue"`
	Currency               item.Currency   `json:"currency"`
	// MixedCurrencies is set when TotalValue adds prices in more than one
	// currency. No conversion is performed.
	MixedCurrencies bool `json:"mixedCurrencies"`
}

// Compute counts warranties with 0 < days left <= 30 and maintenance due
// within 0..7 days of asOf. Already-expired warranties and overdue
// maintenance are not counted.
func Compute(items []item.Item, asOf civil.Date, currency item.Currency) (Stats, error) {
	if asOf.IsZero() {
		return Stats{}, apperr.Validation("asOf must be a valid date")
	}

	s := Stats{
		TotalItems: len(items),
		TotalValue: decimal.Zero,
		Currency:   currency,
	}
	seen := make(map[item.Currency]struct{})

	for i := range items {
		it := &items[i]
		if it.WarrantyExpiry.IsZero() {
			return Stats{}, apperr.Validation(fmt.Sprintf("item %q has an invalid warrantyExpiry", it.Name))
		}
		if it.NextMaintenance.IsZero() {
			return Stats{}, apperr.Validation(fmt.Sprintf("item %q has an invalid nextMaintenance", it.Name))
		}

		if d := asOf.DaysUntil(it.WarrantyExpiry); d > 0 && d <= ExpiringSoonDays {
			s.WarrantiesExpiringSoon++
		}
		if d := asOf.DaysUntil(it.NextMaintenance); d >= 0 && d <= UpcomingDays {
			s.MaintenanceUpcoming++
		}

		s.TotalValue = s.TotalValue.Add(it.Price)
		if it.Currency != "" {
			seen[it.Currency] = struct{}{}
		}
	}

	s.MixedCurrencies = len(seen) > 1
	return s, nil
}

type WarrantyState string

const (
	WarrantyExpired      WarrantyState = "Expired"
	WarrantyExpiringSoon WarrantyState = "Expiring Soon"
	WarrantyActive       WarrantyState = "Active"
)

func WarrantyStatus(expiry, today civil.Date) WarrantyState {
	d := today.DaysUntil(expiry)
	switch {
	case d <= 0:
		return WarrantyExpired
	case d <= ExpiringSoonDays:
		return WarrantyExpiringSoon
	default:
		return WarrantyActive
	}
}

func MaintenanceCountdown(next, today civil.Date) string {
	d := today.DaysUntil(next)
	switch {
	case d < 0:
		return fmt.Sprintf("Overdue by %d days", -d)
	case d == 0:
		return "Due today"
	default:
		return fmt.Sprintf("Due in %d days", d)
	}
}
