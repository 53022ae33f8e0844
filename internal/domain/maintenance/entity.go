package maintenance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"homekeeper/internal/pkg/civil"
)

// Record is one service event. Records are never edited; they disappear
// only with their item. ScheduleApplied is false between the record write
// and the parent schedule update, and is kept out of API responses.
type Record struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"itemId"`
	Date        civil.Date      `json:"date"`
	Cost        decimal.Decimal `json:"cost"`
	Notes       string          `json:"notes"`
	PerformedBy string          `json:"performedBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`

	ScheduleApplied bool `json:"-"`
}

// SortNewestFirst orders by date, then creation time, then id.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
