// Package timeline curates judge-facing events that reference spine records
// by id without ever copying their text.
package timeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"casespine/internal/domain"
	"casespine/internal/ports"
)

// UnknownSpineRefError rejects a write naming a spine id that does not
// resolve. Referential integrity is checked at the write boundary, never
// lazily.
type UnknownSpineRefError struct {
	IDs []string
}

func (e *UnknownSpineRefError) Error() string {
	return fmt.Sprintf("unknown spine record ids: %v", e.IDs)
}

type Service struct {
	Events    ports.TimelineRepository
	Spine     ports.SpineRepository
	Mappings  ports.MappingRepository
	Sequences ports.SequenceRepository

	Now func() time.Time
}

func New(events ports.TimelineRepository, spine ports.SpineRepository, mappings ports.MappingRepository, seq ports.SequenceRepository) *Service {
	return &Service{Events: events, Spine: spine, Mappings: mappings, Sequences: seq, Now: time.Now}
}

type BuildArgs struct {
	Date        string // YYYY-MM-DD
	Lane        string
	Title       string
	Description string
	Status      domain.EventStatus // defaults to asserted
	SpineRefs   []string
	ExhibitRefs []string
}

// Build creates and persists a new event. Status defaults to asserted; every
// spine reference must resolve.
func (s *Service) Build(ctx context.Context, a BuildArgs) (*domain.TimelineEvent, error) {
	status := a.Status
	if status == "" {
		status = domain.StatusAsserted
	}
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	if err := s.checkRefs(ctx, a.SpineRefs); err != nil {
		return nil, err
	}
	n, err := s.Sequences.Next(ctx, "EVT")
	if err != nil {
		return nil, err
	}
	now := s.Now().UTC()
	e := &domain.TimelineEvent{
		ID:          fmt.Sprintf("EVT-%d", n),
		Date:        a.Date,
		Lane:        a.Lane,
		Title:       a.Title,
		Description: a.Description,
		Status:      status,
		SpineRefs:   dedupe(a.SpineRefs),
		ExhibitRefs: dedupe(a.ExhibitRefs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

// Update persists changes to an existing event. UpdatedAt always advances;
// CreatedAt never moves.
func (s *Service) Update(ctx context.Context, e *domain.TimelineEvent) error {
	if !domain.ValidStatus(e.Status) {
		return fmt.Errorf("invalid status %q", e.Status)
	}
	if err := s.checkRefs(ctx, e.SpineRefs); err != nil {
		return err
	}
	e.SpineRefs = dedupe(e.SpineRefs)
	e.UpdatedAt = s.Now().UTC()
	if err := s.Events.Update(ctx, e); err != nil {
		return fmt.Errorf("update event %s: %w", e.ID, err)
	}
	return nil
}

// SetStatus moves an event to any lifecycle value. This is a label, not a
// workflow: every transition is user-driven and allowed.
func (s *Service) SetStatus(ctx context.Context, eventID string, status domain.EventStatus) error {
	e, err := s.Events.Get(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event %s: %w", eventID, err)
	}
	e.Status = status
	return s.Update(ctx, e)
}

// LinkSpineRecords merges additional spine references into an event. A
// record id already linked has no additional effect.
func (s *Service) LinkSpineRecords(ctx context.Context, eventID string, recordIDs []string) (*domain.TimelineEvent, error) {
	if err := s.checkRefs(ctx, recordIDs); err != nil {
		return nil, err
	}
	e, err := s.Events.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event %s: %w", eventID, err)
	}
	e.SpineRefs = dedupe(append(e.SpineRefs, recordIDs...))
	e.UpdatedAt = s.Now().UTC()
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update event %s: %w", eventID, err)
	}
	return e, nil
}

// Promote derives a new event from selected spine records. The event date is
// the earliest referenced timestamp, preserving evidentiary chronology over
// promotion time.
func (s *Service) Promote(ctx context.Context, recordIDs []string, lane, title, description string) (*domain.TimelineEvent, error) {
	if len(recordIDs) == 0 {
		return nil, fmt.Errorf("promote: no spine records selected")
	}
	if err := s.checkRefs(ctx, recordIDs); err != nil {
		return nil, err
	}
	var earliest *time.Time
	for _, id := range recordIDs {
		rec, err := s.Spine.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load record %s: %w", id, err)
		}
		if rec.TimestampUnknown {
			continue
		}
		t := rec.Timestamp
		if earliest == nil || t.Before(*earliest) {
			earliest = &t
		}
	}
	if earliest == nil {
		return nil, fmt.Errorf("promote: no selected record has a confirmed timestamp")
	}
	return s.Build(ctx, BuildArgs{
		Date:        earliest.UTC().Format("2006-01-02"),
		Lane:        lane,
		Title:       title,
		Description: description,
		SpineRefs:   recordIDs,
	})
}

// PromoteExhibit attaches an exhibit code to an event and records the
// cross-reference as an append-only mapping.
func (s *Service) PromoteExhibit(ctx context.Context, eventID, exhibitCode string) (*domain.TimelineEvent, error) {
	e, err := s.Events.Get(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event %s: %w", eventID, err)
	}
	e.ExhibitRefs = dedupe(append(e.ExhibitRefs, exhibitCode))
	e.UpdatedAt = s.Now().UTC()
	if err := s.Events.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update event %s: %w", eventID, err)
	}
	m := &domain.Mapping{
		ID:        uuid.NewString(),
		FromType:  string(domain.TargetTimeline),
		FromID:    eventID,
		ToType:    "exhibit",
		ToID:      exhibitCode,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.Mappings.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("record exhibit mapping: %w", err)
	}
	return e, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.TimelineEvent, error) {
	return s.Events.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.TimelineEvent, error) {
	return s.Events.List(ctx)
}

func (s *Service) checkRefs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	exist, err := s.Spine.Exist(ctx, ids)
	if err != nil {
		return fmt.Errorf("check spine refs: %w", err)
	}
	var unknown []string
	for _, id := range ids {
		if !exist[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &UnknownSpineRefError{IDs: unknown}
	}
	return nil
}

// dedupe keeps first occurrence order while dropping repeats.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := map[string]struct{}{}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
