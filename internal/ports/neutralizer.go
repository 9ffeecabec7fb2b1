package ports

import "context"

type NeutralResult struct {
	Neutral string
	Source  string // rules | ai
	Model   string
}

// Neutralizer produces an objective rendering of text. Implementations must
// never block ingestion or export: network-backed ones carry their own
// timeout and the orchestration layer falls back to the rules path.
type Neutralizer interface {
	Neutralize(ctx context.Context, text, hint string) (NeutralResult, error)
}
