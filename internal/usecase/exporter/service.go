// Package exporter composes spine, timeline and note data into output
// bundles, applying the privacy partition between private and shareable
// annotations.
package exporter

import (
	"context"
	"fmt"
	"os"
	"time"

	exreg "casespine/internal/adapters/exporter/registry"
	"casespine/internal/domain"
	"casespine/internal/ports"
)

type Service struct {
	Files  ports.SourceFileRepository
	Spine  ports.SpineRepository
	Events ports.TimelineRepository
	Notes  ports.NoteRepository
	Reg    *exreg.Registry

	Now func() time.Time
}

func New(files ports.SourceFileRepository, spine ports.SpineRepository, events ports.TimelineRepository, notes ports.NoteRepository, reg *exreg.Registry) *Service {
	return &Service{Files: files, Spine: spine, Events: events, Notes: notes, Reg: reg, Now: time.Now}
}

// SpineBackup is the disaster-recovery snapshot: full fidelity, no
// filtering. The spine has no privacy flag; it is evidentiary by nature.
func (s *Service) SpineBackup(ctx context.Context) (ports.ExportBundle, error) {
	files, err := s.Files.List(ctx)
	if err != nil {
		return ports.ExportBundle{}, fmt.Errorf("export spine backup: %w", err)
	}
	recs, err := s.Spine.ListAll(ctx)
	if err != nil {
		return ports.ExportBundle{}, fmt.Errorf("export spine backup: %w", err)
	}
	return ports.ExportBundle{
		SourceFiles: files,
		SpineItems:  recs,
		ExportedAt:  s.Now().UTC(),
	}, nil
}

// Timeline exports events plus sticky notes. The privacy filter runs after
// retrieval, never at the storage layer: exclude by default, opt in
// explicitly at the call site.
func (s *Service) Timeline(ctx context.Context, includePrivateNotes bool) (ports.ExportBundle, error) {
	events, err := s.Events.List(ctx)
	if err != nil {
		return ports.ExportBundle{}, fmt.Errorf("export timeline: %w", err)
	}
	notes, err := s.Notes.List(ctx)
	if err != nil {
		return ports.ExportBundle{}, fmt.Errorf("export timeline: %w", err)
	}
	include := includePrivateNotes
	return ports.ExportBundle{
		TimelineEvents:      events,
		StickyNotes:         filterNotes(notes, includePrivateNotes),
		ExportedAt:          s.Now().UTC(),
		IncludePrivateNotes: &include,
	}, nil
}

// FullDatabase adds spine data alongside the timeline export. The decision
// to include private notes belongs to an explicit user confirmation; this
// method only consumes the boolean.
func (s *Service) FullDatabase(ctx context.Context, includePrivateNotes bool) (ports.ExportBundle, error) {
	b, err := s.Timeline(ctx, includePrivateNotes)
	if err != nil {
		return ports.ExportBundle{}, err
	}
	spine, err := s.SpineBackup(ctx)
	if err != nil {
		return ports.ExportBundle{}, err
	}
	b.SourceFiles = spine.SourceFiles
	b.SpineItems = spine.SpineItems
	return b, nil
}

// Encode renders a bundle in the requested format via the registry.
func (s *Service) Encode(b ports.ExportBundle, format string) ([]byte, error) {
	exp, ok := s.Reg.Get(format)
	if !ok {
		return nil, fmt.Errorf("no exporter for format %q", format)
	}
	return exp.Encode(b)
}

// WriteFile serializes fully in memory and writes once, so a failure leaves
// no half-written file behind.
func (s *Service) WriteFile(b ports.ExportBundle, format, path string) error {
	data, err := s.Encode(b, format)
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

func filterNotes(notes []*domain.StickyNote, includePrivate bool) []*domain.StickyNote {
	if includePrivate {
		return notes
	}
	out := make([]*domain.StickyNote, 0, len(notes))
	for _, n := range notes {
		if !n.IsPrivate {
			out = append(out, n)
		}
	}
	return out
}
