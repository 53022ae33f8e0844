package notification

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"homekeeper/internal/domain/item"
	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/pkg/validator"
)

// ListLimit caps how many notifications a user sees.
const ListLimit = 50

type Service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetPreferences never fails with not-found; an unsaved user gets the
// defaults, which are not written back.
func (s *Service) GetPreferences(ctx context.Context, userID string) (*Preferences, error) {
	p, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return GetDefaultPreferences(userID), nil
	}
	return p, nil
}

func (s *Service) UpdatePreferences(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*Preferences, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	p := req.toPreferences(userID)
	if err := s.repo.PutPreferences(ctx, p); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Preferences updated", "user_id", userID)
	return p, nil
}

// InitPreferences stores the defaults for a new account.
func (s *Service) InitPreferences(ctx context.Context, userID string) error {
	return s.repo.PutPreferences(ctx, GetDefaultPreferences(userID))
}

// CurrencyFor is the user's display currency.
func (s *Service) CurrencyFor(ctx context.Context, userID string) (item.Currency, error) {
	p, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return "", err
	}
	return p.Currency, nil
}

// List returns the newest notifications first, at most ListLimit.
func (s *Service) List(ctx context.Context, userID string) ([]Notification, error) {
	list, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(list)
	if len(list) > ListLimit {
		list = list[:ListLimit]
	}
	return list, nil
}

func (s *Service) Record(ctx context.Context, req *RecordRequest) (*Notification, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusSent
	}
	n := &Notification{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		ItemID:    req.ItemID,
		Type:      req.Type,
		Recipient: req.Recipient,
		Status:    status,
		Message:   req.Message,
		SentAt:    req.SentAt,
		CreatedAt: s.now().UTC(),
	}
	if n.SentAt == nil && status == StatusSent {
		sent := n.CreatedAt
		n.SentAt = &sent
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Notification recorded", "user_id", n.UserID, "type", n.Type, "status", n.Status)
	return n, nil
}

func sortNewestFirst(list []Notification) {
	sort.SliceStable(list, func(i, j int) bool {
		ti, tj := list[i].SortTime(), list[j].SortTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return list[i].ID < list[j].ID
	})
}
