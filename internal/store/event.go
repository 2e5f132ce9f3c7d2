package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event types. Each event type lives in its own table, so per-table
// auto-increment IDs can't establish cross-type ordering (did the hint come
// before or after the answer?). This shared counter assigns one increasing
// sequence to every event regardless of type.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on top of the ent SQL builder and the
// global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// insertEvent stamps the sequence and timestamp columns and inserts one row.
// It returns the generated row ID.
func (r *eventRepo) insertEvent(ctx context.Context, table string, columns []string, values []any) (int, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, err
	}

	cols := append([]string{"sequence", "timestamp"}, columns...)
	vals := append([]any{seqNum, time.Now().UTC()}, values...)

	query, args := builder().Insert(table).Columns(cols...).Values(vals...).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", table, err)
	}
	return int(id), nil
}

// scanRows runs the query and calls scan for every row.
func (r *eventRepo) scanRows(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
