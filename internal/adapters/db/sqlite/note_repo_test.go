package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casespine/internal/domain"
)

func TestNoteRepo_CRUD(t *testing.T) {
	db := testDB(t)
	repo := NewNoteRepo(db)
	ctx := t.Context()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	n := &domain.StickyNote{
		ID:         "11111111-1111-1111-1111-111111111111",
		TargetType: domain.TargetSpine,
		TargetID:   "SPINE-SRC-1-000001",
		Text:       "check against school calendar",
		Color:      "yellow",
		IsPrivate:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, repo.Create(ctx, n))

	byTarget, err := repo.ListFor(ctx, domain.TargetSpine, "SPINE-SRC-1-000001")
	require.NoError(t, err)
	require.Len(t, byTarget, 1)
	assert.True(t, byTarget[0].IsPrivate)

	n.IsPrivate = false
	n.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, n))
	got, err := repo.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPrivate)

	require.NoError(t, repo.Delete(ctx, n.ID))
	_, err = repo.Get(ctx, n.ID)
	require.Error(t, err)
}

func TestMappingRepo_AppendAndList(t *testing.T) {
	db := testDB(t)
	repo := NewMappingRepo(db)
	ctx := t.Context()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Mapping{
		ID: "m-1", FromType: "spine", FromID: "SPINE-SRC-1-000001",
		ToType: "exhibit", ToID: "EX-A", CreatedAt: now,
	}))
	got, err := repo.ListFrom(ctx, "spine", "SPINE-SRC-1-000001")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "EX-A", got[0].ToID)
}

func TestNeutralCacheRepo_GetPut(t *testing.T) {
	db := testDB(t)
	repo := NewNeutralCacheRepo(db)
	ctx := t.Context()

	miss, err := repo.Get(ctx, "abc", "rules", "")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, repo.Put(ctx, &domain.NeutralCacheEntry{
		ContentHash: "abc", Source: "rules", Neutral: "neutral text",
	}))
	hit, err := repo.Get(ctx, "abc", "rules", "")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "neutral text", hit.Neutral)

	// Same key overwrites rather than duplicating.
	require.NoError(t, repo.Put(ctx, &domain.NeutralCacheEntry{
		ContentHash: "abc", Source: "rules", Neutral: "updated",
	}))
	hit2, err := repo.Get(ctx, "abc", "rules", "")
	require.NoError(t, err)
	assert.Equal(t, "updated", hit2.Neutral)
}
