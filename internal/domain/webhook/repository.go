package webhook

import (
	"context"
	"errors"
	"sort"

	"homekeeper/internal/store"
)

// LogLimit is how many entries GET /webhook-logs returns.
const LogLimit = 20

// LogRetention is how many entries a sweep keeps by default.
const LogRetention = 1000

// LogRepository keeps the global webhook log under webhook-log:<id>.
type LogRepository struct {
	store store.Store
}

func NewLogRepository(s store.Store) *LogRepository {
	return &LogRepository{store: s}
}

func (r *LogRepository) Append(ctx context.Context, e *LogEntry) error {
	return store.PutJSON(ctx, r.store, store.Key("webhook-log", e.ID), e)
}

// Recent returns up to limit entries, newest first.
func (r *LogRepository) Recent(ctx context.Context, limit int) ([]LogEntry, error) {
	entries, _, err := r.newestFirst(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Trim deletes everything but the newest keep entries and reports how
// many went.
func (r *LogRepository) Trim(ctx context.Context, keep int) (int, error) {
	entries, keys, err := r.newestFirst(ctx)
	if err != nil {
		return 0, err
	}
	if keep < 0 {
		keep = 0
	}
	removed := 0
	for i := keep; i < len(entries); i++ {
		if err := r.store.Delete(ctx, keys[i]); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (r *LogRepository) newestFirst(ctx context.Context) ([]LogEntry, []string, error) {
	entries, keys, err := store.ScanJSON[LogEntry](ctx, r.store, store.Prefix("webhook-log"))
	if err != nil {
		return nil, nil, err
	}
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ea, eb := entries[idx[a]], entries[idx[b]]
		if !ea.Timestamp.Equal(eb.Timestamp) {
			return ea.Timestamp.After(eb.Timestamp)
		}
		return ea.ID < eb.ID
	})
	sortedEntries := make([]LogEntry, len(idx))
	sortedKeys := make([]string, len(idx))
	for i, j := range idx {
		sortedEntries[i] = entries[j]
		sortedKeys[i] = keys[j]
	}
	return sortedEntries, sortedKeys, nil
}

// ConfigRepository stores each user's new-item URL as a bare string under
// user:<uid>:webhook:new-item.
type ConfigRepository struct {
	store store.Store
}

func NewConfigRepository(s store.Store) *ConfigRepository {
	return &ConfigRepository{store: s}
}

func (r *ConfigRepository) Get(ctx context.Context, userID string) (*Config, error) {
	url, err := store.GetJSON[string](ctx, r.store, configKey(userID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &Config{NewItemURL: *url}, nil
}

func (r *ConfigRepository) Put(ctx context.Context, userID string, cfg *Config) error {
	if cfg.NewItemURL == "" {
		return r.store.Delete(ctx, configKey(userID))
	}
	return store.PutJSON(ctx, r.store, configKey(userID), cfg.NewItemURL)
}

func configKey(userID string) string {
	return store.Key("user", userID, "webhook", EventNewItem)
}
