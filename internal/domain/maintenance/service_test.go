package maintenance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homekeeper/internal/domain/item"
	"homekeeper/internal/pkg/apperr"
	"homekeeper/internal/pkg/civil"
	"homekeeper/internal/store"
)

type fixture struct {
	store    store.Store
	items    *item.Service
	itemRepo *item.Repository
	repo     *Repository
	svc      *Service
}

func newFixture(t *testing.T, s store.Store) *fixture {
	t.Helper()
	itemRepo := item.NewRepository(s)
	repo := NewRepository(s)
	return &fixture{
		store:    s,
		items:    item.NewService(itemRepo, repo, nil, nil),
		itemRepo: itemRepo,
		repo:     repo,
		svc:      NewService(repo, itemRepo, nil),
	}
}

func (f *fixture) createItem(t *testing.T, userID string, interval int) *item.Item {
	t.Helper()
	p := decimal.RequireFromString("120")
	it, err := f.items.Create(context.Background(), userID, &item.CreateItemRequest{
		Name:                "Water Heater",
		Category:            "Plumbing",
		Room:                "Utility",
		PurchaseDate:        civil.MustParse("2024-05-01"),
		Price:               &p,
		WarrantyMonths:      12,
		MaintenanceInterval: interval,
	})
	require.NoError(t, err)
	return it
}

func TestLogAdvancesSchedule(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	ctx := context.Background()
	before := f.createItem(t, "user-1", 45)

	rec, err := f.svc.Log(ctx, "user-1", &LogRequest{
		ItemID: before.ID,
		Date:   civil.MustParse("2024-08-20"),
		Notes:  "flushed tank",
	})
	require.NoError(t, err)
	assert.True(t, rec.Cost.IsZero())
	assert.Equal(t, before.ID, rec.ItemID)

	after, err := f.itemRepo.Get(ctx, "user-1", before.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-08-20", after.LastMaintenance.String())
	assert.Equal(t, "2024-10-04", after.NextMaintenance.String())
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

	// Everything else is untouched.
	expected := *before
	expected.LastMaintenance = after.LastMaintenance
	expected.NextMaintenance = after.NextMaintenance
	expected.UpdatedAt = after.UpdatedAt
	assert.Equal(t, expected, *after)
}

func TestLogUsesDefaultIntervalWhenUnset(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	ctx := context.Background()
	it := f.createItem(t, "user-1", 0)

	_, err := f.svc.Log(ctx, "user-1", &LogRequest{ItemID: it.ID, Date: civil.MustParse("2025-01-01")})
	require.NoError(t, err)

	after, err := f.itemRepo.Get(ctx, "user-1", it.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", after.NextMaintenance.String())
}

func TestLogRejectsMissingParentWithoutWriting(t *testing.T) {
	s := store.NewMemStore()
	f := newFixture(t, s)

	_, err := f.svc.Log(context.Background(), "user-1", &LogRequest{
		ItemID: "7d444840-9dc0-11d1-b245-5ffdce74fad2",
		Date:   civil.MustParse("2024-08-20"),
	})
	assert.ErrorIs(t, err, item.ErrItemNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestLogValidation(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	it := f.createItem(t, "user-1", 30)
	neg := decimal.RequireFromString("-5")

	cases := map[string]*LogRequest{
		"missing item":  {Date: civil.MustParse("2024-08-20")},
		"missing date":  {ItemID: it.ID},
		"negative cost": {ItemID: it.ID, Date: civil.MustParse("2024-08-20"), Cost: &neg},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Log(context.Background(), "user-1", req)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	ctx := context.Background()
	it := f.createItem(t, "user-1", 30)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	f.svc.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }

	for _, d := range []string{"2024-06-01", "2024-09-01", "2024-07-01", "2024-09-01"} {
		_, err := f.svc.Log(ctx, "user-1", &LogRequest{ItemID: it.ID, Date: civil.MustParse(d), Notes: d})
		require.NoError(t, err)
	}

	records, err := f.svc.ListForItem(ctx, "user-1", it.ID)
	require.NoError(t, err)
	require.Len(t, records, 4)

	dates := make([]string, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.Date.String())
	}
	assert.Equal(t, []string{"2024-09-01", "2024-09-01", "2024-07-01", "2024-06-01"}, dates)
	assert.True(t, records[0].CreatedAt.After(records[1].CreatedAt))
}

func TestListRepairsLaggingSchedule(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	ctx := context.Background()
	it := f.createItem(t, "user-1", 10)

	// A record written without its parent update.
	require.NoError(t, f.repo.Put(ctx, "user-1", &Record{
		ID:        "rec-1",
		ItemID:    it.ID,
		Date:      civil.MustParse("2024-12-01"),
		Cost:      decimal.Zero,
		CreatedAt: it.UpdatedAt.Add(time.Second),
	}))

	records, err := f.svc.ListForItem(ctx, "user-1", it.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	repaired, err := f.itemRepo.Get(ctx, "user-1", it.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", repaired.LastMaintenance.String())
	assert.Equal(t, "2024-12-11", repaired.NextMaintenance.String())

	stored, err := f.repo.ListForItem(ctx, "user-1", it.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].ScheduleApplied)
}

func TestListKeepsEarlierDateLoggedLast(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	ctx := context.Background()
	it := f.createItem(t, "user-1", 30)

	for _, d := range []string{"2052-03-01", "2025-03-01"} {
		_, err := f.svc.Log(ctx, "user-1", &LogRequest{ItemID: it.ID, Date: civil.MustParse(d)})
		require.NoError(t, err)
	}

	_, err := f.svc.ListForItem(ctx, "user-1", it.ID)
	require.NoError(t, err)

	after, err := f.itemRepo.Get(ctx, "user-1", it.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", after.LastMaintenance.String())
	assert.Equal(t, "2025-03-31", after.NextMaintenance.String())

	corrected := civil.MustParse("2025-02-15")
	_, err = f.items.Update(ctx, "user-1", it.ID, &item.UpdateItemRequest{LastMaintenance: &corrected})
	require.NoError(t, err)

	_, err = f.svc.ListForItem(ctx, "user-1", it.ID)
	require.NoError(t, err)
	report, err := f.svc.Reconcile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, SweepReport{Items: 1}, report)

	after, err = f.itemRepo.Get(ctx, "user-1", it.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-15", after.LastMaintenance.String())
}

func TestListLeavesScheduleTouchedAfterUnappliedRecord(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	ctx := context.Background()
	it := f.createItem(t, "user-1", 30)

	// The parent update landed but the record was never marked.
	require.NoError(t, f.repo.Put(ctx, "user-1", &Record{
		ID:        "rec-1",
		ItemID:    it.ID,
		Date:      civil.MustParse("2030-01-01"),
		CreatedAt: it.UpdatedAt.Add(-time.Second),
	}))

	_, err := f.svc.ListForItem(ctx, "user-1", it.ID)
	require.NoError(t, err)

	after, err := f.itemRepo.Get(ctx, "user-1", it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.LastMaintenance, after.LastMaintenance)

	stored, err := f.repo.ListForItem(ctx, "user-1", it.ID)
	require.NoError(t, err)
	assert.True(t, stored[0].ScheduleApplied)
}

func TestListRemovesOrphans(t *testing.T) {
	s := store.NewMemStore()
	f := newFixture(t, s)
	ctx := context.Background()
	orphanItem := "0b7d6f0e-1d7b-4c8e-9d8b-0a8f4f0e9c11"

	require.NoError(t, f.repo.Put(ctx, "user-1", &Record{ID: "a", ItemID: orphanItem, Date: civil.MustParse("2024-01-01")}))

	records, err := f.svc.ListForItem(ctx, "user-1", orphanItem)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, s.Len())
}

func TestDeleteItemCascades(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	ctx := context.Background()
	keep := f.createItem(t, "user-1", 30)
	doomed := f.createItem(t, "user-1", 30)

	for i := 0; i < 5; i++ {
		_, err := f.svc.Log(ctx, "user-1", &LogRequest{ItemID: doomed.ID, Date: civil.MustParse("2024-06-01")})
		require.NoError(t, err)
	}
	_, err := f.svc.Log(ctx, "user-1", &LogRequest{ItemID: keep.ID, Date: civil.MustParse("2024-06-01")})
	require.NoError(t, err)

	require.NoError(t, f.items.Delete(ctx, "user-1", doomed.ID))

	records, err := f.repo.ListForItem(ctx, "user-1", doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	listed, err := f.svc.ListForItem(ctx, "user-1", doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, f.items.Delete(ctx, "user-1", doomed.ID))

	kept, err := f.svc.ListForItem(ctx, "user-1", keep.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

// flakyStore fails deletes of keys ending in a marked suffix.
type flakyStore struct {
	*store.MemStore
	failSuffix string
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	if strings.HasSuffix(key, s.failSuffix) {
		return errors.New("disk on fire")
	}
	return s.MemStore.Delete(ctx, key)
}

func TestDeleteForItemContinuesPastFailures(t *testing.T) {
	s := &flakyStore{MemStore: store.NewMemStore(), failSuffix: ":bad"}
	repo := NewRepository(s)
	ctx := context.Background()

	for _, id := range []string{"a", "bad", "c", "d"} {
		require.NoError(t, repo.Put(ctx, "user-1", &Record{ID: id, ItemID: "item-1"}))
	}

	n, err := repo.DeleteForItem(ctx, "user-1", "item-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	left, err := repo.ListForItem(ctx, "user-1", "item-1")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "bad", left[0].ID)
}

func TestReconcileReportsAcrossItems(t *testing.T) {
	f := newFixture(t, store.NewMemStore())
	ctx := context.Background()
	it := f.createItem(t, "user-1", 30)

	require.NoError(t, f.repo.Put(ctx, "user-1", &Record{ID: "r1", ItemID: it.ID, Date: civil.MustParse("2025-02-01"), CreatedAt: it.UpdatedAt.Add(time.Second)}))
	require.NoError(t, f.repo.Put(ctx, "user-1", &Record{ID: "r2", ItemID: "5f0c1a8e-0000-4000-8000-000000000001", Date: civil.MustParse("2025-02-01")}))

	report, err := f.svc.Reconcile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, SweepReport{Items: 2, Orphans: 1, Repaired: 1}, report)

	report, err = f.svc.Reconcile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, SweepReport{Items: 1}, report)
}
