package ports

import (
	"time"

	"casespine/internal/domain"
)

// ExportBundle is the unit handed to an exporter: only the populated
// sections appear in the encoded output.
type ExportBundle struct {
	SourceFiles         []*domain.SourceFile    `json:"source_files,omitempty"`
	SpineItems          []*domain.SpineRecord   `json:"spine_items,omitempty"`
	TimelineEvents      []*domain.TimelineEvent `json:"timeline_events,omitempty"`
	StickyNotes         []*domain.StickyNote    `json:"sticky_notes,omitempty"`
	ExportedAt          time.Time               `json:"exported_at"`
	IncludePrivateNotes *bool                   `json:"include_private_notes,omitempty"`
}

type Exporter interface {
	Format() string
	Encode(b ExportBundle) ([]byte, error)
}
