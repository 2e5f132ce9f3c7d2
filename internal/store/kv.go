package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// KV is a small string-keyed store for JSON-encoded values.
type KV interface {
	// Get returns the raw value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put inserts or replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Load decodes the JSON value stored under key. It returns def when the key
// is absent or holds a value that does not decode as T.
func Load[T any](ctx context.Context, kv KV, key string, def T) (T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, nil
	}
	return v, nil
}

// Save JSON-encodes v and stores it under key.
func Save(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Put(ctx, key, raw)
}

// kvRepo implements KV on the kv_entries table.
type kvRepo struct {
	db *sql.DB
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := builder().Select("value").
		From(entsql.Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *kvRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := builder().Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	in := make([]any, len(keys))
	for i, k := range keys {
		in[i] = k
	}
	query, args := builder().Delete(kvTable).Where(entsql.In("key", in...)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}
