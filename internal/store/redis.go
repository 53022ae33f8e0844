package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"homekeeper/internal/pkg/apperr"
)

const scanBatch = 500

// RedisStore maps every record onto one Redis string key under namespace.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisStore(ctx context.Context, url, namespace string, poolSize int) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client, namespace: namespace}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.full(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, redisError("get", key, err)
	}
	return b, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.full(key), value, 0).Err(); err != nil {
		return redisError("set", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.full(key)).Err(); err != nil {
		return redisError("delete", key, err)
	}
	return nil
}

func (r *RedisStore) Scan(ctx context.Context, prefix string) ([]Entry, error) {
	pattern := escapeGlob(r.full(prefix)) + "*"

	// SCAN may yield a key more than once while the keyspace rehashes.
	var keys []string
	seen := make(map[string]struct{})
	iter := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = appendUnique(keys, seen, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, redisError("scan", prefix, err)
	}

	out := make([]Entry, 0, len(keys))
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		vals, err := r.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, redisError("mget", prefix, err)
		}
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				// deleted between SCAN and MGET
				continue
			}
			out = append(out, Entry{
				Key:   strings.TrimPrefix(keys[start+i], r.namespace),
				Value: []byte(s),
			})
		}
	}
	return out, nil
}

func appendUnique(keys []string, seen map[string]struct{}, key string) []string {
	if _, ok := seen[key]; ok {
		return keys
	}
	seen[key] = struct{}{}
	return append(keys, key)
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) full(key string) string {
	return r.namespace + key
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}

func redisError(op, key string, err error) error {
	return apperr.Upstream(fmt.Errorf("redis %s %q: %w", op, key, err), "")
}
