package maintenance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"homekeeper/internal/domain/item"
	"homekeeper/internal/metrics"
	"homekeeper/internal/pkg/logger"
)

type Service struct {
	repo    *Repository
	items   *item.Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo *Repository, items *item.Repository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, items: items, metrics: m, now: time.Now}
}

// Log stores a record and moves the parent item's schedule to it, so the
// last logged date wins. The parent must exist; nothing is written
// otherwise. The record is stored unapplied first and marked once the
// parent is updated; an interrupted write is finished by reconcileItem.
func (s *Service) Log(ctx context.Context, userID string, req *LogRequest) (*Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.items.Get(ctx, userID, req.ItemID)
	if err != nil {
		return nil, err
	}

	cost := decimal.Zero
	if req.Cost != nil {
		cost = *req.Cost
	}
	rec := &Record{
		ID:          uuid.NewString(),
		ItemID:      parent.ID,
		Date:        req.Date,
		Cost:        cost,
		Notes:       req.Notes,
		PerformedBy: strings.TrimSpace(req.PerformedBy),
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Put(ctx, userID, rec); err != nil {
		return nil, err
	}

	parent.RecordMaintenance(rec.Date, s.now())
	if err := s.items.Put(ctx, parent); err != nil {
		return nil, err
	}

	rec.ScheduleApplied = true
	if err := s.repo.Put(ctx, userID, rec); err != nil {
		logger.Warn(ctx, "Failed to mark maintenance record applied", "record_id", rec.ID, "error", err)
	}

	logger.Info(ctx, "Maintenance logged", "record_id", rec.ID, "item_id", rec.ItemID, "user_id", userID)
	s.metrics.MaintenanceLogged()
	return rec, nil
}

// ListForItem returns the item's history newest first. Reading also
// reconciles: records of a deleted item are removed, and a record whose
// schedule update never landed is applied.
func (s *Service) ListForItem(ctx context.Context, userID, itemID string) ([]Record, error) {
	if !item.ValidID(itemID) {
		return []Record{}, nil
	}

	records, err := s.repo.ListForItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []Record{}, nil
	}

	SortNewestFirst(records)
	report := s.reconcileItem(ctx, userID, itemID, records)
	if report.Orphans > 0 {
		return []Record{}, nil
	}

	logger.Debug(ctx, "Fetched maintenance records", "count", len(records), "item_id", itemID)
	return records, nil
}

// Reconcile runs the read-path repair over every item the user has
// maintenance records for.
func (s *Service) Reconcile(ctx context.Context, userID string) (SweepReport, error) {
	var report SweepReport

	byItem, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return report, err
	}
	for itemID, records := range byItem {
		SortNewestFirst(records)
		report.Add(s.reconcileItem(ctx, userID, itemID, records))
	}
	return report, nil
}

// reconcileItem finishes interrupted Log calls. Only unapplied records are
// considered, and only the latest of them moves the schedule, and only when
// nothing touched the parent after it was written. Dates never decide, so a
// deliberately earlier entry or edit stands. Failures are logged; the next
// read retries.
func (s *Service) reconcileItem(ctx context.Context, userID, itemID string, records []Record) SweepReport {
	report := SweepReport{Items: 1}

	parent, err := s.items.Get(ctx, userID, itemID)
	if errors.Is(err, item.ErrItemNotFound) {
		n, err := s.repo.DeleteForItem(ctx, userID, itemID)
		if err != nil {
			logger.Warn(ctx, "Orphaned maintenance cleanup failed", "item_id", itemID, "error", err)
		} else {
			logger.Info(ctx, "Removed orphaned maintenance records", "item_id", itemID, "count", n)
		}
		report.Orphans = len(records)
		return report
	}
	if err != nil {
		logger.Warn(ctx, "Maintenance reconcile skipped", "item_id", itemID, "error", err)
		return report
	}

	var pending []*Record
	for i := range records {
		if !records[i].ScheduleApplied {
			pending = append(pending, &records[i])
		}
	}
	if len(pending) == 0 {
		return report
	}

	latest := pending[0]
	for _, rec := range pending[1:] {
		if rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}

	if parent.UpdatedAt.Before(latest.CreatedAt) {
		parent.RecordMaintenance(latest.Date, s.now())
		if err := s.items.Put(ctx, parent); err != nil {
			logger.Warn(ctx, "Maintenance schedule repair failed", "item_id", itemID, "error", err)
			return report
		}
		logger.Info(ctx, "Repaired maintenance schedule", "item_id", itemID, "last_maintenance", latest.Date.String())
		report.Repaired = 1
	}

	for _, rec := range pending {
		rec.ScheduleApplied = true
		if err := s.repo.Put(ctx, userID, rec); err != nil {
			logger.Warn(ctx, "Failed to mark maintenance record applied", "record_id", rec.ID, "error", err)
		}
	}
	return report
}
