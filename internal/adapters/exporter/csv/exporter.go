package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"casespine/internal/domain"
	"casespine/internal/ports"
)

// Exporter renders the spine or timeline table as CSV, one row per record.
// encoding/csv applies standard escaping: fields containing commas, quotes
// or newlines are wrapped in double quotes with inner quotes doubled.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "csv" }

func (e *Exporter) Encode(b ports.ExportBundle) ([]byte, error) {
	switch {
	case b.SpineItems != nil && b.TimelineEvents != nil:
		return nil, fmt.Errorf("csv export: bundle holds both spine and timeline tables; encode them separately")
	case b.SpineItems != nil:
		return encodeSpine(b.SpineItems)
	case b.TimelineEvents != nil:
		return encodeTimeline(b.TimelineEvents)
	default:
		return nil, fmt.Errorf("csv export: bundle holds no table")
	}
}

func encodeSpine(recs []*domain.SpineRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "source_file_id", "timestamp", "sender", "recipient", "counterpart", "platform", "category", "direction", "original_content", "neutral_content", "is_call", "call_seconds"})
	for _, r := range recs {
		ts := ""
		if !r.TimestampUnknown {
			ts = r.Timestamp.UTC().Format(time.RFC3339)
		}
		_ = w.Write([]string{
			r.ID, r.SourceFileID, ts, r.Sender, r.Recipient, r.Counterpart,
			r.Platform, string(r.Category), string(r.Direction),
			r.OriginalContent, r.NeutralContent,
			strconv.FormatBool(r.IsCall), strconv.Itoa(r.CallSeconds),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode spine csv: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeTimeline(events []*domain.TimelineEvent) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "date", "lane", "title", "description", "status", "spine_refs", "exhibit_refs"})
	for _, e := range events {
		_ = w.Write([]string{
			e.ID, e.Date, e.Lane, e.Title, e.Description, string(e.Status),
			strings.Join(e.SpineRefs, ";"), strings.Join(e.ExhibitRefs, ";"),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode timeline csv: %w", err)
	}
	return buf.Bytes(), nil
}
