package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// SequenceRepo issues durable per-prefix sequence numbers. Unlike a
// process-local counter, the last issued value survives restarts, so ids can
// never collide across runs.
type SequenceRepo struct{ *Repo }

func NewSequenceRepo(db *sql.DB) *SequenceRepo { return &SequenceRepo{NewRepo(db)} }

func (r *SequenceRepo) Next(ctx context.Context, prefix string) (int64, error) {
	var v int64
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO id_sequences(prefix, last_value) VALUES (?, 1)
         ON CONFLICT(prefix) DO UPDATE SET last_value = last_value + 1
         RETURNING last_value`, prefix).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("next sequence for %q: %w", prefix, err)
	}
	return v, nil
}
