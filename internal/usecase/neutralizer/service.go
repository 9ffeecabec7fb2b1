// Package neutralizer orchestrates neutral-content production: AI path when
// configured, deterministic rules fallback otherwise, provenance stamped on
// every result. The original content is never written.
package neutralizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	rulesneutral "casespine/internal/adapters/neutralize/rules"
	"casespine/internal/domain"
	"casespine/internal/hashing"
	"casespine/internal/ports"
)

type Service struct {
	Spine ports.SpineRepository
	Cache ports.NeutralCacheRepository
	Rules ports.Neutralizer
	// AI is optional; nil keeps the whole pipeline offline.
	AI      ports.Neutralizer
	AIModel string

	Now func() time.Time
	Log *slog.Logger
}

func New(spine ports.SpineRepository, cache ports.NeutralCacheRepository, rules ports.Neutralizer) *Service {
	return &Service{Spine: spine, Cache: cache, Rules: rules, Now: time.Now, Log: slog.Default()}
}

// NeutralizeRecord derives neutral content for one spine record and stores
// it alongside (never over) the original.
func (s *Service) NeutralizeRecord(ctx context.Context, recordID, hint string) (*domain.SpineRecord, error) {
	rec, err := s.Spine.Get(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", recordID, err)
	}
	res, err := s.produce(ctx, rec.OriginalContent, hint)
	if err != nil {
		return nil, err
	}
	prov := domain.Provenance{Source: res.Source, Model: res.Model, ProducedAt: s.Now().UTC()}
	if err := s.Spine.SetNeutral(ctx, recordID, res.Neutral, prov); err != nil {
		return nil, fmt.Errorf("store neutral content: %w", err)
	}
	rec.NeutralContent = res.Neutral
	rec.NeutralProvenance = &prov
	return rec, nil
}

// SetHumanNeutral stores human-written neutral content with human provenance.
func (s *Service) SetHumanNeutral(ctx context.Context, recordID, neutral string) error {
	prov := domain.Provenance{Source: "human", ProducedAt: s.Now().UTC()}
	if err := s.Spine.SetNeutral(ctx, recordID, neutral, prov); err != nil {
		return fmt.Errorf("store neutral content: %w", err)
	}
	return nil
}

func (s *Service) produce(ctx context.Context, text, hint string) (ports.NeutralResult, error) {
	contentHash := hashing.Content([]byte(text))

	if s.AI != nil {
		if hit, err := s.Cache.Get(ctx, contentHash, "ai", s.AIModel); err == nil && hit != nil {
			return ports.NeutralResult{Neutral: hit.Neutral, Source: "ai", Model: hit.Model}, nil
		}
		res, err := s.AI.Neutralize(ctx, text, hint)
		if err == nil {
			s.cachePut(ctx, contentHash, res)
			return res, nil
		}
		// Degraded mode: the user-visible action still succeeds.
		s.Log.Warn("ai neutralization failed, falling back to rules", "error", err)
	}

	if hit, err := s.Cache.Get(ctx, contentHash, rulesneutral.Source, ""); err == nil && hit != nil {
		return ports.NeutralResult{Neutral: hit.Neutral, Source: rulesneutral.Source}, nil
	}
	res, err := s.Rules.Neutralize(ctx, text, hint)
	if err != nil {
		return ports.NeutralResult{}, fmt.Errorf("rules neutralization: %w", err)
	}
	s.cachePut(ctx, contentHash, res)
	return res, nil
}

func (s *Service) cachePut(ctx context.Context, contentHash string, res ports.NeutralResult) {
	err := s.Cache.Put(ctx, &domain.NeutralCacheEntry{
		ContentHash: contentHash,
		Source:      res.Source,
		Model:       res.Model,
		Neutral:     res.Neutral,
		CreatedAt:   s.Now().UTC(),
	})
	if err != nil {
		s.Log.Warn("neutral cache write failed", "error", err)
	}
}
