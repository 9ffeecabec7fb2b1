package domain

import "time"

type EventStatus string

const (
	StatusAsserted  EventStatus = "asserted"
	StatusDenied    EventStatus = "denied"
	StatusWithdrawn EventStatus = "withdrawn"
	StatusPending   EventStatus = "pending"
	StatusResolved  EventStatus = "resolved"
	StatusFact      EventStatus = "fact"
)

// ValidStatus reports whether s is one of the fixed lifecycle values.
func ValidStatus(s EventStatus) bool {
	switch s {
	case StatusAsserted, StatusDenied, StatusWithdrawn, StatusPending, StatusResolved, StatusFact:
		return true
	}
	return false
}

// TimelineEvent is a judge-facing ledger entry. Description is always a
// summary, never raw spine text; SpineRefs reference records by id without
// copying them.
type TimelineEvent struct {
	ID          string      `json:"id"`   // EVT-<n>
	Date        string      `json:"date"` // YYYY-MM-DD
	Lane        string      `json:"lane"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status"`
	SpineRefs   []string    `json:"spine_refs"`
	ExhibitRefs []string    `json:"exhibit_refs"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
