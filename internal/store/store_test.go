package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"homekeeper/internal/pkg/apperr"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:store_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)

	s, err := NewSQLStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func backends(t *testing.T) map[string]func(t *testing.T) Store {
	t.Helper()

	out := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemStore() },
		"sql":    func(t *testing.T) Store { return newSQLiteStore(t) },
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		out["redis"] = func(t *testing.T) Store {
			s, err := NewRedisStore(context.Background(), url, "homekeeper-test:"+uuid.NewString()+":", 0)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		}
	}
	return out
}

func TestStoreContract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("get missing", func(t *testing.T) {
				s := open(t)
				_, err := s.Get(ctx, "nope")
				assert.ErrorIs(t, err, ErrKeyNotFound)
			})

			t.Run("set overwrites", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, "a", []byte("1")))
				require.NoError(t, s.Set(ctx, "a", []byte("2")))

				got, err := s.Get(ctx, "a")
				require.NoError(t, err)
				assert.Equal(t, "2", string(got))
			})

			t.Run("delete is idempotent", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, "a", []byte("1")))
				require.NoError(t, s.Delete(ctx, "a"))
				require.NoError(t, s.Delete(ctx, "a"))

				_, err := s.Get(ctx, "a")
				assert.ErrorIs(t, err, ErrKeyNotFound)
			})

			t.Run("scan honours the separator", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, Key("user", "1", "item", "x"), []byte("x")))
				require.NoError(t, s.Set(ctx, Key("user", "1", "item", "y"), []byte("y")))
				require.NoError(t, s.Set(ctx, Key("user", "10", "item", "z"), []byte("z")))
				require.NoError(t, s.Set(ctx, Key("user", "1", "preferences"), []byte("p")))

				entries, err := s.Scan(ctx, Prefix("user", "1", "item"))
				require.NoError(t, err)

				keys := make([]string, 0, len(entries))
				for _, e := range entries {
					keys = append(keys, e.Key)
				}
				sort.Strings(keys)
				assert.Equal(t, []string{"user:1:item:x", "user:1:item:y"}, keys)
			})

			t.Run("scan treats wildcards literally", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, "a_b:1", []byte("1")))
				require.NoError(t, s.Set(ctx, "axb:1", []byte("2")))
				require.NoError(t, s.Set(ctx, "a%b*:1", []byte("3")))

				entries, err := s.Scan(ctx, "a_b:")
				require.NoError(t, err)
				require.Len(t, entries, 1)
				assert.Equal(t, "a_b:1", entries[0].Key)

				entries, err = s.Scan(ctx, "a%b*:")
				require.NoError(t, err)
				require.Len(t, entries, 1)
			})

			t.Run("scan is case sensitive", func(t *testing.T) {
				s := open(t)
				require.NoError(t, s.Set(ctx, "Item:1", []byte("1")))
				require.NoError(t, s.Set(ctx, "item:1", []byte("2")))

				entries, err := s.Scan(ctx, "item:")
				require.NoError(t, err)
				require.Len(t, entries, 1)
				assert.Equal(t, "2", string(entries[0].Value))
			})

			t.Run("scan returns each key once", func(t *testing.T) {
				s := open(t)
				const n = 1200
				for i := 0; i < n; i++ {
					require.NoError(t, s.Set(ctx, fmt.Sprintf("log:%04d", i), []byte("x")))
				}

				entries, err := s.Scan(ctx, "log:")
				require.NoError(t, err)
				seen := make(map[string]int, len(entries))
				for _, e := range entries {
					seen[e.Key]++
				}
				assert.Len(t, entries, n)
				assert.Len(t, seen, n)
			})
		})
	}
}

func TestAppendUniqueDropsRepeatedScanKeys(t *testing.T) {
	seen := make(map[string]struct{})
	var keys []string
	for _, k := range []string{"a", "b", "a", "c", "b"} {
		keys = appendUnique(keys, seen, k)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

type widget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, PutJSON(ctx, s, Key("w", "1"), widget{Name: "one", Count: 1}))
	require.NoError(t, PutJSON(ctx, s, Key("w", "2"), widget{Name: "two", Count: 2}))

	got, err := GetJSON[widget](ctx, s, Key("w", "1"))
	require.NoError(t, err)
	assert.Equal(t, "one", got.Name)

	all, keys, err := ScanJSON[widget](ctx, s, Prefix("w"))
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.ElementsMatch(t, []string{"w:1", "w:2"}, keys)

	require.NoError(t, s.Set(ctx, Key("w", "3"), []byte("{broken")))
	_, _, err = ScanJSON[widget](ctx, s, Prefix("w"))
	assert.Error(t, err)
}

func TestMemStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "user:u1:item:i1", Key("user", "u1", "item", "i1"))
	assert.Equal(t, "user:u1:maintenance:i1:", Prefix("user", "u1", "maintenance", "i1"))
	assert.Equal(t, "i1", LastSegment("user:u1:item:i1"))
}

func TestSQLErrorsAreUpstream(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUpstream))
	assert.False(t, errors.Is(err, ErrKeyNotFound))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "etcd"})
	assert.Error(t, err)

	s, err := Open(context.Background(), Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemStore{}, s)
}
