package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"casespine/internal/domain"
)

type SpineRepo struct{ *Repo }

func NewSpineRepo(db *sql.DB) *SpineRepo { return &SpineRepo{NewRepo(db)} }

var spineCols = []string{
	"id", "source_file_id", "ts", "ts_unknown", "sender", "recipient", "counterpart",
	"platform", "category", "original_content", "neutral_content", "neutral_source",
	"neutral_model", "neutral_at", "direction", "is_call", "call_seconds", "created_at",
}

// chronological keeps query results deterministic: known timestamps ascending,
// timestamp-unknown records last, id as tiebreak.
const chronological = "ts IS NULL, ts ASC, id ASC"

// CreateBatch inserts all records in one multi-values statement so the batch
// is atomic: either every record lands or none does.
func (r *SpineRepo) CreateBatch(ctx context.Context, recs []*domain.SpineRecord) error {
	if len(recs) == 0 {
		return nil
	}
	ib := r.SQ.Insert("spine_records").Columns(spineCols...)
	for _, rec := range recs {
		var ts any
		if !rec.TimestampUnknown {
			ts = fmtTime(rec.Timestamp)
		}
		var nSource, nModel, nAt any
		if rec.NeutralProvenance != nil {
			nSource = rec.NeutralProvenance.Source
			nModel = rec.NeutralProvenance.Model
			nAt = fmtTime(rec.NeutralProvenance.ProducedAt)
		}
		ib = ib.Values(rec.ID, rec.SourceFileID, ts, rec.TimestampUnknown, rec.Sender,
			rec.Recipient, rec.Counterpart, rec.Platform, string(rec.Category),
			rec.OriginalContent, rec.NeutralContent, nSource, nModel, nAt,
			string(rec.Direction), rec.IsCall, rec.CallSeconds, fmtTime(rec.CreatedAt))
	}
	sqlStr, args, err := ib.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *SpineRepo) Get(ctx context.Context, id string) (*domain.SpineRecord, error) {
	q := r.SQ.Select(spineCols...).From("spine_records").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return scanSpine(r.DB.QueryRowContext(ctx, sqlStr, args...))
}

func (r *SpineRepo) ListBySource(ctx context.Context, sourceID string) ([]*domain.SpineRecord, error) {
	return r.list(ctx, sq.Eq{"source_file_id": sourceID})
}

func (r *SpineRepo) ListAll(ctx context.Context) ([]*domain.SpineRecord, error) {
	return r.list(ctx, nil)
}

func (r *SpineRepo) ListByCounterpart(ctx context.Context, counterpart string) ([]*domain.SpineRecord, error) {
	return r.list(ctx, sq.Eq{"counterpart": counterpart})
}

// ListRange returns records within [from, to] inclusive. Records flagged
// timestamp-unknown have no defensible position in a date range and are
// excluded until a human confirms a time.
func (r *SpineRepo) ListRange(ctx context.Context, from, to time.Time) ([]*domain.SpineRecord, error) {
	return r.list(ctx, sq.And{
		sq.Eq{"ts_unknown": false},
		sq.GtOrEq{"ts": fmtTime(from)},
		sq.LtOrEq{"ts": fmtTime(to)},
	})
}

// Search is a case-insensitive substring scan across message text, sender,
// recipient and counterpart. A full scan is fine at the expected volumes.
func (r *SpineRepo) Search(ctx context.Context, query string) ([]*domain.SpineRecord, error) {
	like := "%" + query + "%"
	return r.list(ctx, sq.Or{
		sq.Like{"original_content": like},
		sq.Like{"sender": like},
		sq.Like{"recipient": like},
		sq.Like{"counterpart": like},
	})
}

func (r *SpineRepo) Exist(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q := r.SQ.Select("id").From("spine_records").Where(sq.Eq{"id": ids})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// SetNeutral writes derived neutral content and its provenance. It is the
// only update ever issued against spine_records and does not name the
// original_content column.
func (r *SpineRepo) SetNeutral(ctx context.Context, id, neutral string, prov domain.Provenance) error {
	q := r.SQ.Update("spine_records").
		Set("neutral_content", neutral).
		Set("neutral_source", prov.Source).
		Set("neutral_model", prov.Model).
		Set("neutral_at", fmtTime(prov.ProducedAt)).
		Where(sq.Eq{"id": id})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *SpineRepo) list(ctx context.Context, pred any) ([]*domain.SpineRecord, error) {
	q := r.SQ.Select(spineCols...).From("spine_records").OrderBy(chronological)
	if pred != nil {
		q = q.Where(pred)
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.SpineRecord
	for rows.Next() {
		rec, err := scanSpine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanSpine(row rowScanner) (*domain.SpineRecord, error) {
	var rec domain.SpineRecord
	var ts, neutral, nSource, nModel, nAt sql.NullString
	var created string
	var category, direction string
	if err := row.Scan(&rec.ID, &rec.SourceFileID, &ts, &rec.TimestampUnknown, &rec.Sender,
		&rec.Recipient, &rec.Counterpart, &rec.Platform, &category, &rec.OriginalContent,
		&neutral, &nSource, &nModel, &nAt, &direction, &rec.IsCall, &rec.CallSeconds, &created); err != nil {
		return nil, err
	}
	rec.Category = domain.Category(category)
	rec.Direction = domain.Direction(direction)
	if ts.Valid {
		rec.Timestamp = parseTime(ts.String)
	}
	rec.NeutralContent = neutral.String
	if nSource.Valid && nSource.String != "" {
		rec.NeutralProvenance = &domain.Provenance{
			Source: nSource.String,
			Model:  nModel.String,
		}
		if nAt.Valid {
			rec.NeutralProvenance.ProducedAt = parseTime(nAt.String)
		}
	}
	rec.CreatedAt = parseTime(created)
	return &rec, nil
}
