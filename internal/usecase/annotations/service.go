// Package annotations manages sticky notes: the private-by-default metadata
// layer. Notes attach to any entity by opaque id and are the only entity
// that may be deleted.
package annotations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"casespine/internal/domain"
	"casespine/internal/ports"
)

type Service struct {
	Notes ports.NoteRepository
	Now   func() time.Time
}

func New(notes ports.NoteRepository) *Service {
	return &Service{Notes: notes, Now: time.Now}
}

type CreateArgs struct {
	TargetType domain.TargetType
	TargetID   string
	Text       string
	Color      string
	// IsPrivate is a pointer so that absence is distinguishable from an
	// explicit false: absent means private (fail-closed).
	IsPrivate *bool
}

func (s *Service) Create(ctx context.Context, a CreateArgs) (*domain.StickyNote, error) {
	if !domain.ValidTargetType(a.TargetType) {
		return nil, fmt.Errorf("invalid note target type %q", a.TargetType)
	}
	private := true
	if a.IsPrivate != nil {
		private = *a.IsPrivate
	}
	now := s.Now().UTC()
	n := &domain.StickyNote{
		ID:         uuid.NewString(),
		TargetType: a.TargetType,
		TargetID:   a.TargetID,
		Text:       a.Text,
		Color:      a.Color,
		IsPrivate:  private,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Notes.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

type UpdateArgs struct {
	Text  *string
	Color *string
	// IsPrivate flips only on an explicit value; nil leaves the flag alone.
	IsPrivate *bool
}

func (s *Service) Update(ctx context.Context, id string, a UpdateArgs) (*domain.StickyNote, error) {
	n, err := s.Notes.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load note %s: %w", id, err)
	}
	if a.Text != nil {
		n.Text = *a.Text
	}
	if a.Color != nil {
		n.Color = *a.Color
	}
	if a.IsPrivate != nil {
		n.IsPrivate = *a.IsPrivate
	}
	n.UpdatedAt = s.Now().UTC()
	if err := s.Notes.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("update note %s: %w", id, err)
	}
	return n, nil
}

// Delete removes a note. Notes are purely additive metadata, so deletion has
// no cascading effect on anything else.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.Notes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

func (s *Service) ListFor(ctx context.Context, t domain.TargetType, targetID string) ([]*domain.StickyNote, error) {
	return s.Notes.ListFor(ctx, t, targetID)
}
