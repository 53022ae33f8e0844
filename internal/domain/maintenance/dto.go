package maintenance

import (
	"github.com/shopspring/decimal"

	"homekeeper/internal/pkg/civil"
	"homekeeper/internal/pkg/validator"
)

type LogRequest struct {
	ItemID      string           `json:"itemId" validate:"required"`
	Date        civil.Date       `json:"date"`
	Cost        *decimal.Decimal `json:"cost"`
	Notes       string           `json:"notes" validate:"max=2000"`
	PerformedBy string           `json:"performedBy" validate:"max=200"`
}

func (r *LogRequest) Validate() error {
	if err := validator.Check(r); err != nil {
		return err
	}
	if r.Date.IsZero() {
		return ErrDateRequired
	}
	if r.Cost != nil && r.Cost.IsNegative() {
		return ErrNegativeCost
	}
	return nil
}

// SweepReport summarises one reconciliation pass.
type SweepReport struct {
	Items    int `json:"items"`
	Orphans  int `json:"orphans"`
	Repaired int `json:"repaired"`
}

func (r *SweepReport) Add(o SweepReport) {
	r.Items += o.Items
	r.Orphans += o.Orphans
	r.Repaired += o.Repaired
}
