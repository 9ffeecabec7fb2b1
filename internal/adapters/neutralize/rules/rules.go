// Package rules is the deterministic, fully offline neutralization path.
// It is the documented degraded mode when no AI provider is reachable, and
// the default when none is configured.
package rules

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"casespine/internal/normalize"
	"casespine/internal/ports"
)

const Source = "rules"

type Neutralizer struct{}

func New() *Neutralizer { return &Neutralizer{} }

var (
	bangRuns  = regexp.MustCompile(`!{2,}`)
	queryRuns = regexp.MustCompile(`\?{2,}`)
	// charged phrasing softened to neutral descriptions
	replacements = []struct {
		re   *regexp.Regexp
		with string
	}{
		{regexp.MustCompile(`(?i)\byou always\b`), "the sender states that the recipient repeatedly"},
		{regexp.MustCompile(`(?i)\byou never\b`), "the sender states that the recipient does not"},
		{regexp.MustCompile(`(?i)\b(stupid|idiotic|ridiculous|pathetic)\b`), "[characterization removed]"},
		{regexp.MustCompile(`(?i)\b(liar|lying)\b`), "[disputed statement]"},
		{regexp.MustCompile(`(?i)\bi hate you\b`), "the sender expressed strong negative feeling"},
	}
)

// Neutralize produces an objective rendering of text. Same input always
// yields the same output.
func (n *Neutralizer) Neutralize(_ context.Context, text, hint string) (ports.NeutralResult, error) {
	s := normalize.CleanText(text)
	s = bangRuns.ReplaceAllString(s, ".")
	s = queryRuns.ReplaceAllString(s, "?")
	s = strings.ReplaceAll(s, "!", ".")
	for _, r := range replacements {
		s = r.re.ReplaceAllString(s, r.with)
	}
	out := fmt.Sprintf("Message states: %s", s)
	if hint != "" {
		out = fmt.Sprintf("%s (context: %s)", out, hint)
	}
	return ports.NeutralResult{Neutral: out, Source: Source}, nil
}
