package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"casespine/internal/domain"
)

type TimelineRepo struct{ *Repo }

func NewTimelineRepo(db *sql.DB) *TimelineRepo { return &TimelineRepo{NewRepo(db)} }

var timelineCols = []string{"id", "date", "lane", "title", "description", "status", "spine_refs", "exhibit_refs", "created_at", "updated_at"}

func (r *TimelineRepo) Create(ctx context.Context, e *domain.TimelineEvent) error {
	spineRefs, exhibitRefs, err := marshalRefs(e)
	if err != nil {
		return err
	}
	q := r.SQ.Insert("timeline_events").Columns(timelineCols...).
		Values(e.ID, e.Date, e.Lane, e.Title, e.Description, string(e.Status),
			spineRefs, exhibitRefs, fmtTime(e.CreatedAt), fmtTime(e.UpdatedAt))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *TimelineRepo) Update(ctx context.Context, e *domain.TimelineEvent) error {
	spineRefs, exhibitRefs, err := marshalRefs(e)
	if err != nil {
		return err
	}
	// created_at is deliberately absent: it is immutable.
	q := r.SQ.Update("timeline_events").
		Set("date", e.Date).
		Set("lane", e.Lane).
		Set("title", e.Title).
		Set("description", e.Description).
		Set("status", string(e.Status)).
		Set("spine_refs", spineRefs).
		Set("exhibit_refs", exhibitRefs).
		Set("updated_at", fmtTime(e.UpdatedAt)).
		Where(sq.Eq{"id": e.ID})
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

func (r *TimelineRepo) Get(ctx context.Context, id string) (*domain.TimelineEvent, error) {
	q := r.SQ.Select(timelineCols...).From("timeline_events").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return scanEvent(r.DB.QueryRowContext(ctx, sqlStr, args...))
}

func (r *TimelineRepo) List(ctx context.Context) ([]*domain.TimelineEvent, error) {
	q := r.SQ.Select(timelineCols...).From("timeline_events").OrderBy("date ASC, id ASC")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.TimelineEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func marshalRefs(e *domain.TimelineEvent) (string, string, error) {
	spine := e.SpineRefs
	if spine == nil {
		spine = []string{}
	}
	exhibits := e.ExhibitRefs
	if exhibits == nil {
		exhibits = []string{}
	}
	sb, err := json.Marshal(spine)
	if err != nil {
		return "", "", fmt.Errorf("marshal spine refs: %w", err)
	}
	eb, err := json.Marshal(exhibits)
	if err != nil {
		return "", "", fmt.Errorf("marshal exhibit refs: %w", err)
	}
	return string(sb), string(eb), nil
}

func scanEvent(row rowScanner) (*domain.TimelineEvent, error) {
	var e domain.TimelineEvent
	var status, spineRefs, exhibitRefs, created, updated string
	if err := row.Scan(&e.ID, &e.Date, &e.Lane, &e.Title, &e.Description, &status,
		&spineRefs, &exhibitRefs, &created, &updated); err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	if err := json.Unmarshal([]byte(spineRefs), &e.SpineRefs); err != nil {
		return nil, fmt.Errorf("unmarshal spine refs: %w", err)
	}
	if err := json.Unmarshal([]byte(exhibitRefs), &e.ExhibitRefs); err != nil {
		return nil, fmt.Errorf("unmarshal exhibit refs: %w", err)
	}
	e.CreatedAt = parseTime(created)
	e.UpdatedAt = parseTime(updated)
	return &e, nil
}
