package ports

import (
	"context"
	"time"

	"casespine/internal/domain"
)

type SourceFileRepository interface {
	Create(ctx context.Context, f *domain.SourceFile) error
	Get(ctx context.Context, id string) (*domain.SourceFile, error)
	GetByHash(ctx context.Context, fileHash string) (*domain.SourceFile, error)
	List(ctx context.Context) ([]*domain.SourceFile, error)
	// UpdateStats refreshes the derived record count and timestamp bounds.
	// It is the only write to a source file after creation and runs inside
	// the import transaction.
	UpdateStats(ctx context.Context, id string, count int, earliest, latest *time.Time) error
}

type SpineRepository interface {
	CreateBatch(ctx context.Context, recs []*domain.SpineRecord) error
	Get(ctx context.Context, id string) (*domain.SpineRecord, error)
	ListBySource(ctx context.Context, sourceID string) ([]*domain.SpineRecord, error)
	ListAll(ctx context.Context) ([]*domain.SpineRecord, error)
	ListByCounterpart(ctx context.Context, counterpart string) ([]*domain.SpineRecord, error)
	// ListRange returns records within [from, to] inclusive, excluding
	// records whose timestamp is unknown.
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.SpineRecord, error)
	// Search is a case-insensitive substring scan over message, sender,
	// recipient and counterpart.
	Search(ctx context.Context, query string) ([]*domain.SpineRecord, error)
	// Exist reports which of the given ids resolve to stored records.
	Exist(ctx context.Context, ids []string) (map[string]bool, error)
	// SetNeutral stores derived neutral content with its provenance. The
	// original content column is never touched.
	SetNeutral(ctx context.Context, id, neutral string, prov domain.Provenance) error
}

type TimelineRepository interface {
	Create(ctx context.Context, e *domain.TimelineEvent) error
	Update(ctx context.Context, e *domain.TimelineEvent) error
	Get(ctx context.Context, id string) (*domain.TimelineEvent, error)
	List(ctx context.Context) ([]*domain.TimelineEvent, error)
}

type NoteRepository interface {
	Create(ctx context.Context, n *domain.StickyNote) error
	Update(ctx context.Context, n *domain.StickyNote) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.StickyNote, error)
	ListFor(ctx context.Context, t domain.TargetType, targetID string) ([]*domain.StickyNote, error)
	List(ctx context.Context) ([]*domain.StickyNote, error)
}

type MappingRepository interface {
	Create(ctx context.Context, m *domain.Mapping) error
	ListFrom(ctx context.Context, fromType, fromID string) ([]*domain.Mapping, error)
}

type NeutralCacheRepository interface {
	Get(ctx context.Context, contentHash, source, model string) (*domain.NeutralCacheEntry, error)
	Put(ctx context.Context, e *domain.NeutralCacheEntry) error
}

// SequenceRepository issues durable per-prefix sequence numbers so ids
// survive process restarts without collision.
type SequenceRepository interface {
	Next(ctx context.Context, prefix string) (int64, error)
}
