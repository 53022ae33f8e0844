package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homekeeper/internal/domain/item"
	"homekeeper/internal/store"
)

type fixedCurrency item.Currency

func (f fixedCurrency) CurrencyFor(context.Context, string) (item.Currency, error) {
	return item.Currency(f), nil
}

func setupTestRouter(t *testing.T, repo *item.Repository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true

	svc := NewService(repo, fixedCurrency(item.CurrencyINR))
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC) }

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	})
	RegisterRoutes(r.Group("/homekeeper"), NewHandler(svc))
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type statsBody struct {
	Success bool   `json:"success"`
	Stats   Report `json:"stats"`
}

func TestGetStatsUsesStoredItemsAndPreference(t *testing.T) {
	repo := item.NewRepository(store.NewMemStore())
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, &item.Item{
		ID:              uuid.NewString(),
		UserID:          "user-1",
		Name:            "Fridge",
		Price:           decimal.NewFromInt(800),
		Currency:        item.CurrencyINR,
		WarrantyExpiry:  today.AddDays(10),
		NextMaintenance: today.AddDays(3),
	}))
	require.NoError(t, repo.Put(ctx, &item.Item{
		ID:              uuid.NewString(),
		UserID:          "user-2",
		Name:            "Not mine",
		WarrantyExpiry:  today,
		NextMaintenance: today,
	}))

	rr := doRequest(setupTestRouter(t, repo), http.MethodGet, "/homekeeper/stats", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body statsBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Stats.TotalItems)
	assert.Equal(t, 1, body.Stats.WarrantiesExpiringSoon)
	assert.Equal(t, 1, body.Stats.MaintenanceUpcoming)
	assert.Equal(t, item.CurrencyINR, body.Stats.Currency)
	assert.Equal(t, today, body.Stats.AsOf)
	require.Len(t, body.Stats.Items, 1)
	assert.Equal(t, WarrantyExpiringSoon, body.Stats.Items[0].Warranty)
	assert.Equal(t, "Due in 3 days", body.Stats.Items[0].Maintenance)
}

func TestPostStatsOverSuppliedItems(t *testing.T) {
	r := setupTestRouter(t, item.NewRepository(store.NewMemStore()))

	rr := doRequest(r, http.MethodPost, "/homekeeper/stats", `{
		"asOf": "2025-01-01",
		"currency": "USD",
		"items": [
			{"name": "TV", "price": 300, "currency": "USD", "warrantyExpiry": "2025-01-31", "nextMaintenance": "2025-01-08"},
			{"name": "Mixer", "price": 40, "currency": "INR", "warrantyExpiry": "2025-02-01", "nextMaintenance": "2024-12-31"}
		]
	}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body statsBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Stats.TotalItems)
	assert.Equal(t, 1, body.Stats.WarrantiesExpiringSoon)
	assert.Equal(t, 1, body.Stats.MaintenanceUpcoming)
	assert.True(t, decimal.NewFromInt(340).Equal(body.Stats.TotalValue))
	assert.True(t, body.Stats.MixedCurrencies)
	assert.Equal(t, item.CurrencyUSD, body.Stats.Currency)
}

func TestPostStatsRejectsMalformedDates(t *testing.T) {
	r := setupTestRouter(t, item.NewRepository(store.NewMemStore()))

	rr := doRequest(r, http.MethodPost, "/homekeeper/stats", `{"asOf": "15/06/2025", "items": []}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(r, http.MethodPost, "/homekeeper/stats", `{"items": [{"name": "x", "nextMaintenance": "2025-01-01"}]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "warrantyExpiry")

	rr = doRequest(r, http.MethodPost, "/homekeeper/stats", `{"items": [], "currency": "EUR"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
