// Package hashing provides the content-addressed fingerprints that make
// re-import idempotent: same bytes always yield the same digest.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

// Content returns the hex-encoded SHA-256 digest of b.
func Content(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// File hashes a whole source file. Same algorithm as Content; kept separate
// so large-file streaming can diverge later without changing call sites.
func File(b []byte) string {
	return Content(b)
}
