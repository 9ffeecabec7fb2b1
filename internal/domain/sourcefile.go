package domain

import "time"

// SourceFile is one imported export file, identified by its content hash.
// Created exactly once per distinct hash and never mutated afterwards.
type SourceFile struct {
	ID          string     `json:"id"` // SRC-<n>
	Filename    string     `json:"filename"`
	FileHash    string     `json:"file_hash"`
	ImportedAt  time.Time  `json:"imported_at"`
	RecordCount int        `json:"record_count"`
	EarliestAt  *time.Time `json:"earliest_at,omitempty"`
	LatestAt    *time.Time `json:"latest_at,omitempty"`
}
