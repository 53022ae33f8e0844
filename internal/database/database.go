package database

import (
	"context"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"homekeeper/internal/pkg/logger"
)

func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logger.Info(ctx, "Connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if dsn == "" {
		dsn = "file:homekeeper.db?_pragma=busy_timeout(5000)"
	}
	logger.Info(ctx, "Using SQLite for local development", "dsn", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}
