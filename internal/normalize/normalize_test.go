package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", Whitespace("  a \t b\n\nc  "))
	assert.Equal(t, "", Whitespace("   "))
	assert.Equal(t, "", Whitespace(""))
}

func TestLineBreaks(t *testing.T) {
	assert.Equal(t, "a\nb\nc", LineBreaks("a\r\nb\rc"))
	assert.Equal(t, "a\nb", LineBreaks("a\nb"))
}

func TestCleanText(t *testing.T) {
	// CRLF noise and doubled spaces from different export sources must
	// clean to the same canonical form.
	assert.Equal(t, "pick up at 5", CleanText("pick  up\r\nat 5"))
	assert.Equal(t, CleanText("pick up at 5"), CleanText(" pick\tup\r\n at  5 "))
}

func TestDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-05":           "2024-01-05",
		"2024-01-05T09:30:00Z": "2024-01-05",
		"2024-01-05 09:30":     "2024-01-05",
		"01/05/2024":           "2024-01-05",
		"1/5/2024 09:30":       "2024-01-05",
		"1/5/2024":             "2024-01-05",
		"not a date":           "",
		"":                     "",
		"2024-13-45":           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Date(in), "input %q", in)
	}
}

func TestParseTime_Unparseable(t *testing.T) {
	_, ok := ParseTime("yesterday-ish")
	assert.False(t, ok)
}
