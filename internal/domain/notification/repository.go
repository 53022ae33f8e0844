package notification

import (
	"context"
	"errors"

	"homekeeper/internal/store"
)

type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// GetPreferences returns nil, nil when the user never saved any.
func (r *Repository) GetPreferences(ctx context.Context, userID string) (*Preferences, error) {
	p, err := store.GetJSON[Preferences](ctx, r.store, preferencesKey(userID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	return p, err
}

func (r *Repository) PutPreferences(ctx context.Context, p *Preferences) error {
	return store.PutJSON(ctx, r.store, preferencesKey(p.UserID), p)
}

func (r *Repository) Create(ctx context.Context, n *Notification) error {
	return store.PutJSON(ctx, r.store, notificationKey(n.UserID, n.ID), n)
}

func (r *Repository) List(ctx context.Context, userID string) ([]Notification, error) {
	list, _, err := store.ScanJSON[Notification](ctx, r.store, store.Prefix("user", userID, "notification"))
	return list, err
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	return r.store.Delete(ctx, notificationKey(userID, id))
}

func preferencesKey(userID string) string {
	return store.Key("user", userID, "preferences")
}

func notificationKey(userID, id string) string {
	return store.Key("user", userID, "notification", id)
}
