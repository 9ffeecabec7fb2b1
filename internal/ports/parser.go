package ports

import (
	"time"

	"casespine/internal/domain"
)

// CandidateRecord is a parsed row before deduplication: it has no id and no
// category yet.
type CandidateRecord struct {
	Timestamp        time.Time
	TimestampUnknown bool
	Sender           string
	Recipient        string
	Counterpart      string
	Platform         string
	Message          string // cleaned via normalize.CleanText
	Direction        domain.Direction
	IsCall           bool
	CallSeconds      int
}

// RowError records a row-level anomaly that was skipped or flagged without
// aborting the batch.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type ParseResult struct {
	Records   []CandidateRecord
	RowErrors []RowError
}

type Parser interface {
	Format() string
	Parse(data []byte) (ParseResult, error)
}
