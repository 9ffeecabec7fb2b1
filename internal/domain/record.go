package domain

import "time"

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

type Category string

const (
	CategoryAccessDenial    Category = "access-denial"
	CategoryFinancialStrain Category = "financial-strain"
	CategoryReactive        Category = "reactive"
	CategoryScheduleChange  Category = "schedule-change"
	CategoryEmergency       Category = "emergency"
	CategoryLegalThreat     Category = "legal-threat"
	CategoryDocumentRequest Category = "document-request"
	CategoryGeneric         Category = "generic-communication"
	CategoryOther           Category = "other"
)

// Provenance records who or what produced a derived value and when.
type Provenance struct {
	Source     string    `json:"source"` // human | rules | ai
	Model      string    `json:"model,omitempty"`
	ProducedAt time.Time `json:"produced_at"`
}

// SpineRecord is one immutable communication unit on the truth spine.
// OriginalContent is set exactly once at creation; NeutralContent is a
// separate derived layer and always carries provenance.
type SpineRecord struct {
	ID                string      `json:"id"` // SPINE-<sourceID>-<000001>
	SourceFileID      string      `json:"source_file_id"`
	Timestamp         time.Time   `json:"timestamp"`
	TimestampUnknown  bool        `json:"timestamp_unknown,omitempty"`
	Sender            string      `json:"sender"`
	Recipient         string      `json:"recipient"`
	Counterpart       string      `json:"counterpart"`
	Platform          string      `json:"platform"`
	Category          Category    `json:"category"`
	OriginalContent   string      `json:"original_content"`
	NeutralContent    string      `json:"neutral_content,omitempty"`
	NeutralProvenance *Provenance `json:"neutral_provenance,omitempty"`
	Direction         Direction   `json:"direction"`
	IsCall            bool        `json:"is_call,omitempty"`
	CallSeconds       int         `json:"call_seconds,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}
