// Package store is the namespaced key-value Record Store every HomeKeeper
// service persists through. Keys are colon-separated paths such as
// "user:<uid>:item:<id>"; listing is done by prefix scan.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrKeyNotFound = errors.New("key not found")

const Separator = ":"

// Entry is one key/value pair returned by Scan.
type Entry struct {
	Key   string
	Value []byte
}

// Store offers atomic single-key operations only. Scan order is unspecified.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
	Scan(ctx context.Context, prefix string) ([]Entry, error)
	Close() error
}

func Key(parts ...string) string {
	return strings.Join(parts, Separator)
}

// Prefix is Key with a trailing separator, so "user:1" never matches "user:10".
func Prefix(parts ...string) string {
	return Key(parts...) + Separator
}

// LastSegment returns the part of key after its final separator.
func LastSegment(key string) string {
	if i := strings.LastIndex(key, Separator); i >= 0 {
		return key[i+1:]
	}
	return key
}

func GetJSON[T any](ctx context.Context, s Store, key string) (*T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &v, nil
}

func PutJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// ScanJSON decodes every value under prefix. Keys are returned alongside so
// callers can delete what they read.
func ScanJSON[T any](ctx context.Context, s Store, prefix string) ([]T, []string, error) {
	entries, err := s.Scan(ctx, prefix)
	if err != nil {
		return nil, nil, err
	}
	values := make([]T, 0, len(entries))
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		var v T
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", e.Key, err)
		}
		values = append(values, v)
		keys = append(keys, e.Key)
	}
	return values, keys, nil
}
