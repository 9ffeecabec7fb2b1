package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"casespine/internal/domain"
)

type NoteRepo struct{ *Repo }

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{NewRepo(db)} }

var noteCols = []string{"id", "target_type", "target_id", "text", "color", "is_private", "created_at", "updated_at"}

func (r *NoteRepo) Create(ctx context.Context, n *domain.StickyNote) error {
	q := r.SQ.Insert("sticky_notes").Columns(noteCols...).
		Values(n.ID, string(n.TargetType), n.TargetID, n.Text, n.Color, n.IsPrivate,
			fmtTime(n.CreatedAt), fmtTime(n.UpdatedAt))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *NoteRepo) Update(ctx context.Context, n *domain.StickyNote) error {
	q := r.SQ.Update("sticky_notes").
		Set("text", n.Text).
		Set("color", n.Color).
		Set("is_private", n.IsPrivate).
		Set("updated_at", fmtTime(n.UpdatedAt)).
		Where(sq.Eq{"id": n.ID})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	q := r.SQ.Delete("sticky_notes").Where(sq.Eq{"id": id})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *NoteRepo) Get(ctx context.Context, id string) (*domain.StickyNote, error) {
	q := r.SQ.Select(noteCols...).From("sticky_notes").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return scanNote(r.DB.QueryRowContext(ctx, sqlStr, args...))
}

func (r *NoteRepo) ListFor(ctx context.Context, t domain.TargetType, targetID string) ([]*domain.StickyNote, error) {
	return r.listWhere(ctx, sq.Eq{"target_type": string(t), "target_id": targetID})
}

func (r *NoteRepo) List(ctx context.Context) ([]*domain.StickyNote, error) {
	return r.listWhere(ctx, nil)
}

func (r *NoteRepo) listWhere(ctx context.Context, pred any) ([]*domain.StickyNote, error) {
	q := r.SQ.Select(noteCols...).From("sticky_notes").OrderBy("created_at ASC, id ASC")
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
	var out []*domain.StickyNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNote(row rowScanner) (*domain.StickyNote, error) {
	var n domain.StickyNote
	var targetType, created, updated string
	if err := row.Scan(&n.ID, &targetType, &n.TargetID, &n.Text, &n.Color, &n.IsPrivate, &created, &updated); err != nil {
		return nil, err
	}
	n.TargetType = domain.TargetType(targetType)
	n.CreatedAt = parseTime(created)
	n.UpdatedAt = parseTime(updated)
	return &n, nil
}
