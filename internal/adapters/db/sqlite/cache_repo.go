package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"casespine/internal/domain"
)

type NeutralCacheRepo struct{ *Repo }

func NewNeutralCacheRepo(db *sql.DB) *NeutralCacheRepo { return &NeutralCacheRepo{NewRepo(db)} }

func (r *NeutralCacheRepo) Get(ctx context.Context, contentHash, source, model string) (*domain.NeutralCacheEntry, error) {
	q := r.SQ.Select("id", "content_hash", "source", "model", "neutral", "created_at").
		From("neutral_cache").
		Where(sq.Eq{"content_hash": contentHash, "source": source, "model": model}).
		Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var e domain.NeutralCacheEntry
	var created string
	err = r.DB.QueryRowContext(ctx, sqlStr, args...).
		Scan(&e.ID, &e.ContentHash, &e.Source, &e.Model, &e.Neutral, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.CreatedAt = parseTime(created)
	return &e, nil
}

func (r *NeutralCacheRepo) Put(ctx context.Context, e *domain.NeutralCacheEntry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	ib := r.SQ.Insert("neutral_cache").
		Columns("content_hash", "source", "model", "neutral", "created_at").
		Values(e.ContentHash, e.Source, e.Model, e.Neutral, fmtTime(e.CreatedAt)).
		Suffix("ON CONFLICT(content_hash, source, model) DO UPDATE SET neutral=excluded.neutral")
	sqlStr, args, err := ib.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
