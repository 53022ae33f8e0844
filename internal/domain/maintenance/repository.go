package maintenance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/store"
)

const deleteConcurrency = 8

// Repository keeps records under user:<uid>:maintenance:<itemId>:<id>.
type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// storedRecord is the persisted form; it carries the schedule flag the
// API hides.
type storedRecord struct {
	Record
	ScheduleApplied bool `json:"scheduleApplied"`
}

func (r *Repository) Put(ctx context.Context, userID string, rec *Record) error {
	return store.PutJSON(ctx, r.store, key(userID, rec.ItemID, rec.ID), storedRecord{
		Record:          *rec,
		ScheduleApplied: rec.ScheduleApplied,
	})
}

func (r *Repository) ListForItem(ctx context.Context, userID, itemID string) ([]Record, error) {
	return r.scan(ctx, store.Prefix("user", userID, "maintenance", itemID))
}

// ListForUser groups every record the user owns by item id.
func (r *Repository) ListForUser(ctx context.Context, userID string) (map[string][]Record, error) {
	records, err := r.scan(ctx, store.Prefix("user", userID, "maintenance"))
	if err != nil {
		return nil, err
	}
	out := make(map[string][]Record)
	for _, rec := range records {
		out[rec.ItemID] = append(out[rec.ItemID], rec)
	}
	return out, nil
}

func (r *Repository) scan(ctx context.Context, prefix string) ([]Record, error) {
	stored, _, err := store.ScanJSON[storedRecord](ctx, r.store, prefix)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(stored))
	for _, s := range stored {
		rec := s.Record
		rec.ScheduleApplied = s.ScheduleApplied
		records = append(records, rec)
	}
	return records, nil
}

// DeleteForItem removes every record under the item. Each key is deleted
// independently; a failure is logged and never stops its siblings. The
// returned count covers successful deletes only.
func (r *Repository) DeleteForItem(ctx context.Context, userID, itemID string) (int, error) {
	entries, err := r.store.Scan(ctx, store.Prefix("user", userID, "maintenance", itemID))
	if err != nil {
		return 0, fmt.Errorf("scan maintenance for %s: %w", itemID, err)
	}

	deleted := make([]bool, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deleteConcurrency)
	for i, e := range entries {
		g.Go(func() error {
			if err := r.store.Delete(gctx, e.Key); err != nil {
				logger.Warn(ctx, "Failed to delete maintenance record", "key", e.Key, "error", err)
				return nil
			}
			deleted[i] = true
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, ok := range deleted {
		if ok {
			n++
		}
	}
	return n, nil
}

func key(userID, itemID, id string) string {
	return store.Key("user", userID, "maintenance", itemID, id)
}
