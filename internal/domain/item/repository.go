package item

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"homekeeper/internal/store"
)

// Repository keeps items under user:<uid>:item:<id>.
type Repository struct {
	store store.Store
}

func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

func (r *Repository) Get(ctx context.Context, userID, id string) (*Item, error) {
	if !ValidID(id) {
		return nil, ErrItemNotFound
	}
	it, err := store.GetJSON[Item](ctx, r.store, key(userID, id))
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func (r *Repository) Put(ctx context.Context, it *Item) error {
	return store.PutJSON(ctx, r.store, key(it.UserID, it.ID), it)
}

func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	if !ValidID(id) {
		return nil
	}
	return r.store.Delete(ctx, key(userID, id))
}

func (r *Repository) List(ctx context.Context, userID string) ([]Item, error) {
	items, _, err := store.ScanJSON[Item](ctx, r.store, store.Prefix("user", userID, "item"))
	return items, err
}

// ValidID reports whether id could have been issued by this service.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func key(userID, id string) string {
	return store.Key("user", userID, "item", id)
}
