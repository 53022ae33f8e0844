package stats

import (
	"context"
	"time"

	"homekeeper/internal/domain/item"
	"homekeeper/internal/pkg/civil"
	"homekeeper/internal/pkg/validator"
)

// CurrencySource resolves a user's display currency.
type CurrencySource interface {
	CurrencyFor(ctx context.Context, userID string) (item.Currency, error)
}

// ItemStatus is the per-item dashboard badge.
type ItemStatus struct {
	ItemID      string        `json:"itemId"`
	Name        string        `json:"name"`
	Warranty    WarrantyState `json:"warranty"`
	Maintenance string        `json:"maintenance"`
}

// Report is Stats plus per-item badges.
type Report struct {
	Stats
	AsOf  civil.Date   `json:"asOf"`
	Items []ItemStatus `json:"items"`
}

// ComputeRequest asks for stats over a client-held item list.
type ComputeRequest struct {
	Items    []item.Item   `json:"items"`
	AsOf     civil.Date    `json:"asOf"`
	Currency item.Currency `json:"currency" validate:"omitempty,oneof=USD INR"`
}

type Service struct {
	items    *item.Repository
	currency CurrencySource
	now      func() time.Time
}

func NewService(items *item.Repository, currency CurrencySource) *Service {
	return &Service{items: items, currency: currency, now: time.Now}
}

// ForUser computes the report over the caller's stored items as of today (UTC).
func (s *Service) ForUser(ctx context.Context, userID string) (*Report, error) {
	items, err := s.items.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	cur, err := s.currencyFor(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	return build(items, civil.Today(s.now()), cur)
}

// Compute works on a supplied list; asOf defaults to today and currency to
// the caller's preference.
func (s *Service) Compute(ctx context.Context, userID string, req *ComputeRequest) (*Report, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = civil.Today(s.now())
	}
	cur, err := s.currencyFor(ctx, userID, req.Currency)
	if err != nil {
		return nil, err
	}
	return build(req.Items, asOf, cur)
}

func (s *Service) currencyFor(ctx context.Context, userID string, requested item.Currency) (item.Currency, error) {
	if requested != "" {
		return requested, nil
	}
	if s.currency == nil {
		return item.CurrencyUSD, nil
	}
	return s.currency.CurrencyFor(ctx, userID)
}

func build(items []item.Item, asOf civil.Date, cur item.Currency) (*Report, error) {
	st, err := Compute(items, asOf, cur)
	if err != nil {
		return nil, err
	}

	statuses := make([]ItemStatus, 0, len(items))
	for i := range items {
		statuses = append(statuses, ItemStatus{
			ItemID:      items[i].ID,
			Name:        items[i].Name,
			Warranty:    WarrantyStatus(items[i].WarrantyExpiry, asOf),
			Maintenance: MaintenanceCountdown(items[i].NextMaintenance, asOf),
		})
	}
	return &Report{Stats: st, AsOf: asOf, Items: statuses}, nil
}
