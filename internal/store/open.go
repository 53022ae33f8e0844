package store

import (
	"context"
	"fmt"

	"homekeeper/internal/database"
	"homekeeper/internal/pkg/logger"
)

const (
	DriverMemory = "memory"
	DriverSQL    = "sql"
	DriverRedis  = "redis"
)

type Config struct {
	Driver         string
	DatabaseURL    string
	RedisURL       string
	RedisKeyPrefix string
	RedisPoolSize  int
}

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		logger.Warn(ctx, "Using in-memory record store; data is lost on restart")
		return NewMemStore(), nil
	case DriverSQL:
		db, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		return NewSQLStore(db)
	case DriverRedis:
		s, err := NewRedisStore(ctx, cfg.RedisURL, cfg.RedisKeyPrefix, cfg.RedisPoolSize)
		if err != nil {
			return nil, err
		}
		logger.Info(ctx, "Redis record store ready", "namespace", cfg.RedisKeyPrefix)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
