package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"casespine/internal/domain"
)

func TestRuleOrder_IsStable(t *testing.T) {
	// The evaluation order is a documented property: two rules can both
	// match the same text and the first one must win, release after release.
	assert.Equal(t, []domain.Category{
		domain.CategoryEmergency,
		domain.CategoryLegalThreat,
		domain.CategoryAccessDenial,
		domain.CategoryFinancialStrain,
		domain.CategoryDocumentRequest,
		domain.CategoryScheduleChange,
		domain.CategoryReactive,
	}, RuleOrder())
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		text string
		want domain.Category
	}{
		{"Can you drop off the kids", domain.CategoryScheduleChange},
		{"I am at the hospital with her", domain.CategoryEmergency},
		{"My lawyer will hear about this", domain.CategoryLegalThreat},
		{"You won't let me see them again", domain.CategoryAccessDenial},
		{"I can't afford rent this month", domain.CategoryFinancialStrain},
		{"Please sign the forms today", domain.CategoryDocumentRequest},
		{"this is ridiculous!!", domain.CategoryReactive},
		{"ok see you then", domain.CategoryGeneric},
		{"", domain.CategoryGeneric},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Categorize(c.text), "text %q", c.text)
	}
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	// Mentions both a court threat and a schedule word; legal-threat is
	// earlier in the order and must win.
	got := Categorize("Change the pickup or I call my lawyer")
	assert.Equal(t, domain.CategoryLegalThreat, got)
}

func TestCategorize_EmergencyOutranksEverything(t *testing.T) {
	got := Categorize("emergency, she is hurt, forget the custody schedule")
	assert.Equal(t, domain.CategoryEmergency, got)
}
