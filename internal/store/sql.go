package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homekeeper/internal/pkg/apperr"
)

type kvRecord struct {
	Key       string    `gorm:"column:key;primaryKey;size:512"`
	Value     []byte    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (kvRecord) TableName() string { return "kv_store" }

// SQLStore keeps every record as one row of the kv_store table. It works on
// any gorm dialect; Postgres and SQLite are the two wired in database.Connect.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrate kv_store: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec kvRecord
	err := s.db.WithContext(ctx).Where(`"key" = ?`, key).Take(&rec).Error
	if err != nil {
		return nil, sqlError("get", key, err)
	}
	return rec.Value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	rec := kvRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return sqlError("set", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where(`"key" = ?`, key).Delete(&kvRecord{}).Error
	if err != nil {
		return sqlError("delete", key, err)
	}
	return nil
}

func (s *SQLStore) Scan(ctx context.Context, prefix string) ([]Entry, error) {
	var recs []kvRecord
	err := s.db.WithContext(ctx).
		Where(`"key" LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Find(&recs).Error
	if err != nil {
		return nil, sqlError("scan", prefix, err)
	}

	// SQLite LIKE ignores ASCII case.
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		if strings.HasPrefix(r.Key, prefix) {
			out = append(out, Entry{Key: r.Key, Value: r.Value})
		}
	}
	return out, nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func sqlError(op, key string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrKeyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		err = fmt.Errorf("postgres %s (%s): %w", pgErr.Code, pgErr.Message, err)
	}
	return apperr.Upstream(fmt.Errorf("store %s %q: %w", op, key, err), "")
}
