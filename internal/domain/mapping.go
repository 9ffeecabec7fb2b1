package domain

import "time"

// Mapping is a generalized append-only cross-reference, used for exhibit
// promotion (spine record -> exhibit code).
type Mapping struct {
	ID        string    `json:"id"`
	FromType  string    `json:"from_type"`
	FromID    string    `json:"from_id"`
	ToType    string    `json:"to_type"`
	ToID      string    `json:"to_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NeutralCacheEntry caches a neutralization result keyed by the hash of the
// cleaned original content plus the producer identity.
type NeutralCacheEntry struct {
	ID          int64     `json:"id"`
	ContentHash string    `json:"content_hash"`
	Source      string    `json:"source"`
	Model       string    `json:"model"`
	Neutral     string    `json:"neutral"`
	CreatedAt   time.Time `json:"created_at"`
}
