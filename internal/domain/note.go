package domain

import "time"

type TargetType string

const (
	TargetSpine    TargetType = "spine"
	TargetTimeline TargetType = "timeline"
	TargetDate     TargetType = "date"
	TargetLane     TargetType = "lane"
)

func ValidTargetType(t TargetType) bool {
	switch t {
	case TargetSpine, TargetTimeline, TargetDate, TargetLane:
		return true
	}
	return false
}

// StickyNote is a private-by-default annotation attached to any entity by
// opaque id. Notes are the only deletable entity in the model.
type StickyNote struct {
	ID         string     `json:"id"`
	TargetType TargetType `json:"target_type"`
	TargetID   string     `json:"target_id"`
	Text       string     `json:"text"`
	Color      string     `json:"color"`
	IsPrivate  bool       `json:"is_private"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
