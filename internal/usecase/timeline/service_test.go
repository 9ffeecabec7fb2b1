package timeline

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casespine/internal/adapters/db/sqlite"
	"casespine/internal/domain"
)

type fixture struct {
	svc   *Service
	spine *sqlite.SpineRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "case.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	files := sqlite.NewSourceFileRepo(db)
	spine := sqlite.NewSpineRepo(db)
	require.NoError(t, files.Create(t.Context(), &domain.SourceFile{
		ID: "SRC-1", Filename: "export.csv", FileHash: "h",
		ImportedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}))

	svc := New(sqlite.NewTimelineRepo(db), spine, sqlite.NewMappingRepo(db), sqlite.NewSequenceRepo(db))
	svc.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, spine: spine}
}

func (f *fixture) seedRecords(t *testing.T, ids map[string]time.Time) {
	t.Helper()
	var recs []*domain.SpineRecord
	for id, ts := range ids {
		recs = append(recs, &domain.SpineRecord{
			ID: id, SourceFileID: "SRC-1", Timestamp: ts,
			Sender: "Other", Recipient: "Self", Counterpart: "Other",
			Platform: "SMS", Category: domain.CategoryGeneric,
			OriginalContent: "text " + id, Direction: domain.DirectionInbound,
			CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	require.NoError(t, f.spine.CreateBatch(t.Context(), recs))
}

func TestBuild_DefaultsToAsserted(t *testing.T) {
	f := newFixture(t)
	e, err := f.svc.Build(t.Context(), BuildArgs{Date: "2024-03-01", Lane: "custody", Title: "Exchange refused"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAsserted, e.Status)
	assert.Equal(t, "EVT-1", e.ID)
}

func TestBuild_RejectsUnknownSpineRef(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Build(t.Context(), BuildArgs{
		Date: "2024-03-01", Lane: "custody", Title: "t",
		SpineRefs: []string{"SPINE-SRC-1-999999"},
	})
	require.Error(t, err)
	var refErr *UnknownSpineRefError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, []string{"SPINE-SRC-1-999999"}, refErr.IDs)

	// Nothing stored after the rejection.
	list, err := f.svc.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLinkSpineRecords_MergesAndDedupes(t *testing.T) {
	f := newFixture(t)
	f.seedRecords(t, map[string]time.Time{
		"SPINE-SRC-1-000001": time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		"SPINE-SRC-1-000002": time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
	})
	e, err := f.svc.Build(t.Context(), BuildArgs{
		Date: "2024-03-01", Lane: "custody", Title: "t",
		SpineRefs: []string{"SPINE-SRC-1-000001"},
	})
	require.NoError(t, err)

	got, err := f.svc.LinkSpineRecords(t.Context(), e.ID, []string{"SPINE-SRC-1-000001", "SPINE-SRC-1-000002", "SPINE-SRC-1-000002"})
	require.NoError(t, err)
	assert.Equal(t, []string{"SPINE-SRC-1-000001", "SPINE-SRC-1-000002"}, got.SpineRefs)
}

func TestPromote_UsesEarliestRecordDate(t *testing.T) {
	f := newFixture(t)
	f.seedRecords(t, map[string]time.Time{
		"SPINE-SRC-1-000001": time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		"SPINE-SRC-1-000002": time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC),
	})
	e, err := f.svc.Promote(t.Context(), []string{"SPINE-SRC-1-000001", "SPINE-SRC-1-000002"}, "custody", "Missed exchanges", "Two missed exchanges in one week.")
	require.NoError(t, err)
	// Earliest referenced timestamp, not latest, not promotion time.
	assert.Equal(t, "2024-03-01", e.Date)
	assert.Len(t, e.SpineRefs, 2)
}

func TestSetStatus_AnyTransitionAllowed(t *testing.T) {
	f := newFixture(t)
	e, err := f.svc.Build(t.Context(), BuildArgs{Date: "2024-03-01", Lane: "l", Title: "t"})
	require.NoError(t, err)

	for _, status := range []domain.EventStatus{
		domain.StatusFact, domain.StatusDenied, domain.StatusPending,
		domain.StatusWithdrawn, domain.StatusResolved, domain.StatusAsserted,
	} {
		require.NoError(t, f.svc.SetStatus(t.Context(), e.ID, status))
		got, err := f.svc.Get(t.Context(), e.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	require.Error(t, f.svc.SetStatus(t.Context(), e.ID, domain.EventStatus("bogus")))
}

func TestPromoteExhibit_RecordsMapping(t *testing.T) {
	f := newFixture(t)
	e, err := f.svc.Build(t.Context(), BuildArgs{Date: "2024-03-01", Lane: "l", Title: "t"})
	require.NoError(t, err)

	got, err := f.svc.PromoteExhibit(t.Context(), e.ID, "EX-A")
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-A"}, got.ExhibitRefs)

	// Re-promotion of the same code changes nothing on the event.
	got, err = f.svc.PromoteExhibit(t.Context(), e.ID, "EX-A")
	require.NoError(t, err)
	assert.Equal(t, []string{"EX-A"}, got.ExhibitRefs)
}
