package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeutralize_Deterministic(t *testing.T) {
	n := New()
	a, err := n.Neutralize(t.Context(), "You NEVER show up on time!!", "")
	require.NoError(t, err)
	b, err := n.Neutralize(t.Context(), "You NEVER show up on time!!", "")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, Source, a.Source)
}

func TestNeutralize_SoftensChargedText(t *testing.T) {
	n := New()
	got, err := n.Neutralize(t.Context(), "This is ridiculous, you always cancel!!", "")
	require.NoError(t, err)
	assert.NotContains(t, got.Neutral, "ridiculous")
	assert.NotContains(t, got.Neutral, "!!")
	assert.Contains(t, got.Neutral, "Message states:")
}

func TestNeutralize_HintAppended(t *testing.T) {
	n := New()
	got, err := n.Neutralize(t.Context(), "see you at 5", "pickup discussion")
	require.NoError(t, err)
	assert.Contains(t, got.Neutral, "context: pickup discussion")
}
