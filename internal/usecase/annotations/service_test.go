package annotations

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casespine/internal/adapters/db/sqlite"
	"casespine/internal/domain"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := sqlite.Init(filepath.Join(t.TempDir(), "case.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	svc := New(sqlite.NewNoteRepo(db))
	svc.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func boolPtr(b bool) *bool { return &b }

func TestCreate_PrivacyFailClosed(t *testing.T) {
	svc := newService(t)
	n, err := svc.Create(t.Context(), CreateArgs{
		TargetType: domain.TargetSpine,
		TargetID:   "SPINE-SRC-1-000001",
		Text:       "double-check date",
	})
	require.NoError(t, err)
	assert.True(t, n.IsPrivate, "absent flag must default to private")
}

func TestCreate_ExplicitShareable(t *testing.T) {
	svc := newService(t)
	n, err := svc.Create(t.Context(), CreateArgs{
		TargetType: domain.TargetTimeline,
		TargetID:   "EVT-1",
		Text:       "shareable context",
		IsPrivate:  boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, n.IsPrivate)
}

func TestCreate_InvalidTargetType(t *testing.T) {
	svc := newService(t)
	_, err := svc.Create(t.Context(), CreateArgs{TargetType: "exhibit", TargetID: "x", Text: "t"})
	require.Error(t, err)
}

func TestUpdate_NilFlagLeavesPrivacyAlone(t *testing.T) {
	svc := newService(t)
	n, err := svc.Create(t.Context(), CreateArgs{
		TargetType: domain.TargetDate, TargetID: "2024-03-01", Text: "original",
	})
	require.NoError(t, err)

	text := "edited"
	got, err := svc.Update(t.Context(), n.ID, UpdateArgs{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.True(t, got.IsPrivate, "update without an explicit flag must not flip privacy")

	got, err = svc.Update(t.Context(), n.ID, UpdateArgs{IsPrivate: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, got.IsPrivate)
}

func TestDelete_NoCascade(t *testing.T) {
	svc := newService(t)
	a, err := svc.Create(t.Context(), CreateArgs{TargetType: domain.TargetLane, TargetID: "custody", Text: "a"})
	require.NoError(t, err)
	b, err := svc.Create(t.Context(), CreateArgs{TargetType: domain.TargetLane, TargetID: "custody", Text: "b"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(t.Context(), a.ID))
	left, err := svc.ListFor(t.Context(), domain.TargetLane, "custody")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, b.ID, left[0].ID)
}
