package webhook

import (
	"context"

	"github.com/shopspring/decimal"

	"homekeeper/internal/domain/item"
)

// ReplacementFinder searches for offers that could replace an item.
type ReplacementFinder interface {
	Search(ctx context.Context, it item.Item, userID string) ([]Offer, error)
}

// PriceBandFinder synthesizes one pricier and one cheaper offer around the
// item's price. It does not contact any marketplace.
type PriceBandFinder struct{}

var (
	upperBand = decimal.RequireFromString("1.1")
	lowerBand = decimal.RequireFromString("0.9")
)

func (PriceBandFinder) Search(_ context.Context, it item.Item, _ string) ([]Offer, error) {
	return []Offer{
		{
			Name:   it.Name + " (2025 Model)",
			Price:  it.Price.Mul(upperBand),
			Source: "Amazon",
			URL:    "#",
			Rating: 4.5,
		},
		{
			Name:   "Similar to " + it.Name,
			Price:  it.Price.Mul(lowerBand),
			Source: "Flipkart",
			URL:    "#",
			Rating: 4.3,
		},
	}, nil
}
