package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"casespine/internal/domain"
)

type SourceFileRepo struct{ *Repo }

func NewSourceFileRepo(db *sql.DB) *SourceFileRepo { return &SourceFileRepo{NewRepo(db)} }

var sourceFileCols = []string{"id", "filename", "file_hash", "imported_at", "record_count", "earliest_at", "latest_at"}

func (r *SourceFileRepo) Create(ctx context.Context, f *domain.SourceFile) error {
	q := r.SQ.Insert("source_files").Columns(sourceFileCols...).
		Values(f.ID, f.Filename, f.FileHash, fmtTime(f.ImportedAt), f.RecordCount, nullableTime(f.EarliestAt), nullableTime(f.LatestAt))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *SourceFileRepo) Get(ctx context.Context, id string) (*domain.SourceFile, error) {
	return r.getWhere(ctx, sq.Eq{"id": id})
}

func (r *SourceFileRepo) GetByHash(ctx context.Context, fileHash string) (*domain.SourceFile, error) {
	f, err := r.getWhere(ctx, sq.Eq{"file_hash": fileHash})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return f, err
}

func (r *SourceFileRepo) getWhere(ctx context.Context, pred any) (*domain.SourceFile, error) {
	q := r.SQ.Select(sourceFileCols...).From("source_files").Where(pred).Limit(1)
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return scanSourceFile(r.DB.QueryRowContext(ctx, sqlStr, args...))
}

func (r *SourceFileRepo) List(ctx context.Context) ([]*domain.SourceFile, error) {
	q := r.SQ.Select(sourceFileCols...).From("source_files").OrderBy("id ASC")
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.SourceFile
	for rows.Next() {
		f, err := scanSourceFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *SourceFileRepo) UpdateStats(ctx context.Context, id string, count int, earliest, latest *time.Time) error {
	q := r.SQ.Update("source_files").
		Set("record_count", count).
		Set("earliest_at", nullableTime(earliest)).
		Set("latest_at", nullableTime(latest)).
		Where(sq.Eq{"id": id})
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanSourceFile(row rowScanner) (*domain.SourceFile, error) {
	var f domain.SourceFile
	var imported string
	var earliest, latest sql.NullString
	if err := row.Scan(&f.ID, &f.Filename, &f.FileHash, &imported, &f.RecordCount, &earliest, &latest); err != nil {
		return nil, err
	}
	f.ImportedAt = parseTime(imported)
	f.EarliestAt = scanTimePtr(earliest)
	f.LatestAt = scanTimePtr(latest)
	return &f, nil
}
