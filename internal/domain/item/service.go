package item

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"homekeeper/internal/metrics"
	"homekeeper/internal/pkg/logger"
)

// Notifier hears about newly created items. Implementations must not block.
type Notifier interface {
	ItemCreated(ctx context.Context, userID string, it Item)
}

// ChildPurger removes records that belong to an item.
type ChildPurger interface {
	DeleteForItem(ctx context.Context, userID, itemID string) (int, error)
}

type Service struct {
	repo     *Repository
	children ChildPurger
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewService(repo *Repository, children ChildPurger, notifier Notifier, m *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		children: children,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID string, req *CreateItemRequest) (*Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = CurrencyUSD
	}
	last := req.LastMaintenance
	if last.IsZero() {
		last = req.PurchaseDate
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	it := &Item{
		ID:                   uuid.NewString(),
		UserID:               userID,
		Name:                 strings.TrimSpace(req.Name),
		Category:             strings.TrimSpace(req.Category),
		Room:                 strings.TrimSpace(req.Room),
		PurchaseDate:         req.PurchaseDate,
		Price:                *req.Price,
		Currency:             currency,
		Retailer:             req.Retailer,
		WarrantyMonths:       req.WarrantyMonths,
		MaintenanceInterval:  req.MaintenanceInterval,
		LastMaintenance:      last,
		SerialNumber:         req.SerialNumber,
		ModelNumber:          req.ModelNumber,
		ReceiptURL:           req.ReceiptURL,
		Notes:                req.Notes,
		MarkedForReplacement: req.MarkedForReplacement,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	it.rederiveWarranty()
	it.rederiveSchedule()

	if err := s.repo.Put(ctx, it); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Item created", "item_id", it.ID, "user_id", userID)
	s.metrics.ItemCreated()
	if s.notifier != nil {
		s.notifier.ItemCreated(ctx, userID, *it)
	}
	return it, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Item, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "Fetched items", "count", len(items), "user_id", userID)
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Item, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update merges a partial patch. id and userId always come from the path
// and the caller's identity.
func (s *Service) Update(ctx context.Context, userID, id string, req *UpdateItemRequest) (*Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	it, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	req.apply(it)
	it.ID = id
	it.UserID = userID
	it.Touch(s.now())

	if err := s.repo.Put(ctx, it); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Item updated", "item_id", id, "user_id", userID)
	return it, nil
}

func (s *Service) MarkForReplacement(ctx context.Context, userID, id string, marked bool) (*Item, error) {
	it, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	it.MarkedForReplacement = marked
	it.Touch(s.now())
	if err := s.repo.Put(ctx, it); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Item replacement flag changed", "item_id", id, "marked", marked)
	return it, nil
}

// Delete removes the item, then its maintenance history. Deleting a missing
// item succeeds. Child cleanup failures are logged, never returned; the
// maintenance read path sweeps up anything left behind.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	if s.children != nil && ValidID(id) {
		n, err := s.children.DeleteForItem(ctx, userID, id)
		if err != nil {
			logger.Warn(ctx, "Maintenance cascade incomplete", "item_id", id, "error", err)
		} else if n > 0 {
			logger.Debug(ctx, "Maintenance records removed", "item_id", id, "count", n)
		}
	}

	logger.Info(ctx, "Item deleted", "item_id", id, "user_id", userID)
	return nil
}
