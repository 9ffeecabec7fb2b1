package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"casespine/internal/domain"
	"casespine/internal/normalize"
	"casespine/internal/ports"
)

// requiredColumns are the logical columns every export must carry. Matching
// is case-insensitive and order-independent.
var requiredColumns = []string{"date", "time", "sender", "recipient", "message"}

// MissingColumnsError is returned when the header lacks mandatory columns.
// Nothing is committed when it occurs.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("csv missing mandatory columns: %s", strings.Join(e.Missing, ", "))
}

type Parser struct {
	PlatformDefault string
	SelfPatterns    []string // labels identifying the device owner, matched case-insensitively
}

func New(platformDefault string, selfPatterns []string) *Parser {
	return &Parser{PlatformDefault: platformDefault, SelfPatterns: selfPatterns}
}

func (p *Parser) Format() string { return "csv" }

func (p *Parser) Parse(data []byte) (ports.ParseResult, error) {
	data = stripBOM(data)
	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return ports.ParseResult{}, fmt.Errorf("read csv header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return ports.ParseResult{}, &MissingColumnsError{Missing: missing}
	}

	dateIdx := idx["date"]
	timeIdx := idx["time"]
	senderIdx := idx["sender"]
	recipientIdx := idx["recipient"]
	messageIdx := idx["message"]
	platformIdx := -1
	if i, ok := idx["platform"]; ok {
		platformIdx = i
	}
	durationIdx := -1
	for _, name := range []string{"call duration", "duration"} {
		if i, ok := idx[name]; ok {
			durationIdx = i
			break
		}
	}
	minLen := maxIndex(dateIdx, timeIdx, senderIdx, recipientIdx, messageIdx) + 1

	var out ports.ParseResult
	line := 1 // header consumed
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			out.RowErrors = append(out.RowErrors, ports.RowError{Line: line, Reason: err.Error()})
			continue
		}
		if len(rec) < minLen {
			out.RowErrors = append(out.RowErrors, ports.RowError{Line: line, Reason: "short row, skipped"})
			continue
		}

		sender := normalize.Whitespace(rec[senderIdx])
		recipient := normalize.Whitespace(rec[recipientIdx])
		c := ports.CandidateRecord{
			Sender:    sender,
			Recipient: recipient,
			Platform:  p.PlatformDefault,
			Message:   normalize.CleanText(rec[messageIdx]),
		}
		if platformIdx >= 0 && platformIdx < len(rec) && strings.TrimSpace(rec[platformIdx]) != "" {
			c.Platform = normalize.Whitespace(rec[platformIdx])
		}
		if durationIdx >= 0 && durationIdx < len(rec) {
			if secs, err := strconv.Atoi(strings.TrimSpace(rec[durationIdx])); err == nil && secs > 0 {
				c.IsCall = true
				c.CallSeconds = secs
			}
		}

		// Combined date+time first, bare date as ISO fallback. A record with
		// an unparseable timestamp is kept but flagged, never defaulted to
		// import time.
		ts, ok := normalize.ParseTime(rec[dateIdx] + " " + rec[timeIdx])
		if !ok {
			ts, ok = normalize.ParseTime(rec[dateIdx])
		}
		if ok {
			c.Timestamp = ts
		} else {
			c.TimestampUnknown = true
			out.RowErrors = append(out.RowErrors, ports.RowError{Line: line, Reason: "unparseable timestamp, record flagged"})
		}

		if p.isSelf(sender) {
			c.Direction = domain.DirectionOutbound
			c.Counterpart = recipient
		} else {
			c.Direction = domain.DirectionInbound
			c.Counterpart = sender
		}
		out.Records = append(out.Records, c)
	}
	return out, nil
}

func (p *Parser) isSelf(label string) bool {
	for _, pat := range p.SelfPatterns {
		if strings.EqualFold(strings.TrimSpace(pat), label) {
			return true
		}
	}
	return false
}

func maxIndex(idxs ...int) int {
	m := 0
	for _, i := range idxs {
		if i > m {
			m = i
		}
	}
	return m
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
