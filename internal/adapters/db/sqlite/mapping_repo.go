package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"casespine/internal/domain"
)

type MappingRepo struct{ *Repo }

func NewMappingRepo(db *sql.DB) *MappingRepo { return &MappingRepo{NewRepo(db)} }

var mappingCols = []string{"id", "from_type", "from_id", "to_type", "to_id", "created_at"}

func (r *MappingRepo) Create(ctx context.Context, m *domain.Mapping) error {
	q := r.SQ.Insert("mappings").Columns(mappingCols...).
		Values(m.ID, m.FromType, m.FromID, m.ToType, m.ToID, fmtTime(m.CreatedAt))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *MappingRepo) ListFrom(ctx context.Context, fromType, fromID string) ([]*domain.Mapping, error) {
	q := r.SQ.Select(mappingCols...).From("mappings").
		Where(sq.Eq{"from_type": fromType, "from_id": fromID}).
		OrderBy("created_at ASC, id ASC")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Mapping
	for rows.Next() {
		var m domain.Mapping
		var created string
		if err := rows.Scan(&m.ID, &m.FromType, &m.FromID, &m.ToType, &m.ToID, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = parseTime(created)
		out = append(out, &m)
	}
	return out, rows.Err()
}
