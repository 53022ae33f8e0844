package stats

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homekeeper/internal/domain/item"
	"homekeeper/internal/pkg/apperr"
	"homekeeper/internal/pkg/civil"
)

var today = civil.MustParse("2025-06-15")

func itemWith(name string, warrantyExpiry, next civil.Date, price string, cur item.Currency) item.Item {
	return item.Item{
		Name:            name,
		WarrantyExpiry:  warrantyExpiry,
		NextMaintenance: next,
		Price:           decimal.RequireFromString(price),
		Currency:        cur,
	}
}

func TestComputeWarrantyBoundaries(t *testing.T) {
	far := today.AddDays(365)
	items := []item.Item{
		itemWith("today", today, far, "1", item.CurrencyUSD),
		itemWith("plus30", today.AddDays(30), far, "1", item.CurrencyUSD),
		itemWith("plus31", today.AddDays(31), far, "1", item.CurrencyUSD),
		itemWith("yesterday", today.AddDays(-1), far, "1", item.CurrencyUSD),
	}

	s, err := Compute(items, today, item.CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, 4, s.TotalItems)
	assert.Equal(t, 1, s.WarrantiesExpiringSoon)
	assert.Equal(t, 0, s.MaintenanceUpcoming)
}

func TestComputeMaintenanceWindow(t *testing.T) {
	far := today.AddDays(365)
	items := []item.Item{
		itemWith("due today", far, today, "1", item.CurrencyUSD),
		itemWith("due in 7", far, today.AddDays(7), "1", item.CurrencyUSD),
		itemWith("due in 8", far, today.AddDays(8), "1", item.CurrencyUSD),
		itemWith("overdue", far, today.AddDays(-2), "1", item.CurrencyUSD),
	}

	s, err := Compute(items, today, item.CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, 2, s.MaintenanceUpcoming)
}

func TestComputeTotalValueAndCurrencies(t *testing.T) {
	far := today.AddDays(365)

	s, err := Compute([]item.Item{
		itemWith("a", far, far, "10.10", item.CurrencyUSD),
		itemWith("b", far, far, "0.20", item.CurrencyUSD),
	}, today, item.CurrencyUSD)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.30").Equal(s.TotalValue))
	assert.False(t, s.MixedCurrencies)

	s, err = Compute([]item.Item{
		itemWith("a", far, far, "10", item.CurrencyUSD),
		itemWith("b", far, far, "500", item.CurrencyINR),
	}, today, item.CurrencyINR)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(510).Equal(s.TotalValue))
	assert.True(t, s.MixedCurrencies)
	assert.Equal(t, item.CurrencyINR, s.Currency)
}

func TestComputeEmptyList(t *testing.T) {
	s, err := Compute(nil, today, item.CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalItems)
	assert.True(t, s.TotalValue.IsZero())
}

func TestComputeRejectsZeroDates(t *testing.T) {
	_, err := Compute(nil, civil.Date{}, item.CurrencyUSD)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = Compute([]item.Item{itemWith("broken", civil.Date{}, today, "1", "")}, today, item.CurrencyUSD)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestWarrantyStatus(t *testing.T) {
	assert.Equal(t, WarrantyExpired, WarrantyStatus(today, today))
	assert.Equal(t, WarrantyExpired, WarrantyStatus(today.AddDays(-10), today))
	assert.Equal(t, WarrantyExpiringSoon, WarrantyStatus(today.AddDays(1), today))
	assert.Equal(t, WarrantyExpiringSoon, WarrantyStatus(today.AddDays(30), today))
	assert.Equal(t, WarrantyActive, WarrantyStatus(today.AddDays(31), today))
}

func TestMaintenanceCountdown(t *testing.T) {
	assert.Equal(t, "Overdue by 3 days", MaintenanceCountdown(today.AddDays(-3), today))
	assert.Equal(t, "Due today", MaintenanceCountdown(today, today))
	assert.Equal(t, "Due in 1 days", MaintenanceCountdown(today.AddDays(1), today))
	assert.Equal(t, "Due in 12 days", MaintenanceCountdown(today.AddDays(12), today))
}
