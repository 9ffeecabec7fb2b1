package exporter

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casespine/internal/adapters/db/sqlite"
	csvexport "casespine/internal/adapters/exporter/csv"
	"casespine/internal/adapters/exporter/jsonbundle"
	exreg "casespine/internal/adapters/exporter/registry"
	csvparser "casespine/internal/adapters/parser/csv"
	"casespine/internal/domain"
	"casespine/internal/ports"
	"casespine/internal/usecase/importer"
)

type fixture struct {
	svc    *Service
	imp    *importer.Service
	notes  *sqlite.NoteRepo
	events *sqlite.TimelineRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "case.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	files := sqlite.NewSourceFileRepo(db)
	spine := sqlite.NewSpineRepo(db)
	notes := sqlite.NewNoteRepo(db)
	events := sqlite.NewTimelineRepo(db)

	reg := exreg.New()
	reg.Register(jsonbundle.New())
	reg.Register(csvexport.New())

	svc := New(files, spine, events, notes, reg)
	svc.Now = func() time.Time { return time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC) }

	imp := importer.New(files, spine, sqlite.NewSequenceRepo(db), csvparser.New("SMS", []string{"Self"}))
	imp.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, imp: imp, notes: notes, events: events}
}

func (f *fixture) seedNote(t *testing.T, id string, private bool) {
	t.Helper()
	now := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.notes.Create(t.Context(), &domain.StickyNote{
		ID: id, TargetType: domain.TargetLane, TargetID: "custody",
		Text: "note " + id, IsPrivate: private, CreatedAt: now, UpdatedAt: now,
	}))
}

const sampleCSV = "Date,Time,Sender,Recipient,Message\n" +
	"2024-01-05,09:00,Self,Other,first message\n" +
	"2024-01-06,10:00,Other,Self,second message\n"

func TestSpineBackup_FullFidelity(t *testing.T) {
	f := newFixture(t)
	_, err := f.imp.Import(t.Context(), "export.csv", []byte(sampleCSV))
	require.NoError(t, err)

	b, err := f.svc.SpineBackup(t.Context())
	require.NoError(t, err)
	assert.Len(t, b.SourceFiles, 1)
	assert.Len(t, b.SpineItems, 2)
	assert.Nil(t, b.StickyNotes)
	assert.Equal(t, time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), b.ExportedAt)
}

func TestTimeline_PrivacyPartition(t *testing.T) {
	f := newFixture(t)
	f.seedNote(t, "note-private", true)
	f.seedNote(t, "note-shared", false)

	closed, err := f.svc.Timeline(t.Context(), false)
	require.NoError(t, err)
	require.Len(t, closed.StickyNotes, 1)
	assert.Equal(t, "note-shared", closed.StickyNotes[0].ID)
	for _, n := range closed.StickyNotes {
		assert.False(t, n.IsPrivate)
	}
	require.NotNil(t, closed.IncludePrivateNotes)
	assert.False(t, *closed.IncludePrivateNotes)

	open, err := f.svc.Timeline(t.Context(), true)
	require.NoError(t, err)
	assert.Len(t, open.StickyNotes, 2)
}

func TestFullDatabase_ComposesAllSections(t *testing.T) {
	f := newFixture(t)
	_, err := f.imp.Import(t.Context(), "export.csv", []byte(sampleCSV))
	require.NoError(t, err)
	f.seedNote(t, "note-private", true)

	b, err := f.svc.FullDatabase(t.Context(), true)
	require.NoError(t, err)
	assert.Len(t, b.SpineItems, 2)
	assert.Len(t, b.SourceFiles, 1)
	assert.Len(t, b.StickyNotes, 1)
}

func TestEncode_JSONSchema(t *testing.T) {
	f := newFixture(t)
	_, err := f.imp.Import(t.Context(), "export.csv", []byte(sampleCSV))
	require.NoError(t, err)

	b, err := f.svc.SpineBackup(t.Context())
	require.NoError(t, err)
	out, err := f.svc.Encode(b, "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "source_files")
	assert.Contains(t, decoded, "spine_items")
	assert.Contains(t, decoded, "exported_at")
}

func TestEncode_UnknownFormat(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Encode(ports.ExportBundle{}, "xml")
	require.Error(t, err)
}

func TestWriteFile_WritesOnce(t *testing.T) {
	f := newFixture(t)
	f.seedNote(t, "note-shared", false)
	b, err := f.svc.Timeline(t.Context(), false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "timeline.json")
	require.NoError(t, f.svc.WriteFile(b, "json", path))

	// A failing format leaves no file behind.
	badPath := filepath.Join(t.TempDir(), "timeline.xml")
	require.Error(t, f.svc.WriteFile(b, "xml", badPath))
	assert.NoFileExists(t, badPath)
}

// Dry-run round-trip: importing the same bytes into a fresh store yields a
// structurally identical snapshot on deterministic fields.
func TestRoundTrip_DeterministicSnapshot(t *testing.T) {
	snapshot := func(t *testing.T) []byte {
		f := newFixture(t)
		_, err := f.imp.Import(t.Context(), "export.csv", []byte(sampleCSV))
		require.NoError(t, err)
		b, err := f.svc.SpineBackup(t.Context())
		require.NoError(t, err)
		out, err := f.svc.Encode(b, "json")
		require.NoError(t, err)
		return out
	}
	a := snapshot(t)
	b := snapshot(t)
	assert.Equal(t, string(a), string(b))
}
