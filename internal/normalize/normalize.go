// Package normalize holds the pure text and date cleanup helpers applied
// before hashing or categorization. All functions are side-effect free and
// return empty strings rather than failing.
package normalize

import (
	"strings"
	"time"
)

// Whitespace collapses runs of whitespace to a single space and trims ends.
func Whitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// LineBreaks canonicalizes CRLF and CR variants to a single LF.
func LineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// CleanText is the canonical preprocessing step before hashing or
// categorization: line-break normalization followed by whitespace collapse.
// Callers must apply it so a record's hash and category are stable across
// export sources with incidental formatting differences.
func CleanText(s string) string {
	return Whitespace(LineBreaks(s))
}

// dateLayouts are the input shapes Date accepts, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Date canonicalizes a date-like string to "YYYY-MM-DD". Supported inputs
// are ISO-8601 (with or without a time component), "MM/DD/YYYY" and
// "M/D/YYYY" (with optional "HH:mm" or "HH:mm:ss"). Anything else returns
// the empty string; Date never panics.
func Date(s string) string {
	t, ok := ParseTime(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// ParseTime parses s against the supported layouts, returning the parsed
// time in UTC and whether any layout matched.
func ParseTime(s string) (time.Time, bool) {
	s = Whitespace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
