// Package importer runs the ingestion pipeline: parse, categorize,
// deduplicate, insert. Originals are stored write-once; re-importing the
// same file is always safe.
package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"casespine/internal/categorize"
	"casespine/internal/domain"
	"casespine/internal/hashing"
	"casespine/internal/ports"
)

type Service struct {
	Files     ports.SourceFileRepository
	Spine     ports.SpineRepository
	Sequences ports.SequenceRepository
	Parser    ports.Parser

	// Now is injectable so tests can pin creation timestamps.
	Now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(files ports.SourceFileRepository, spine ports.SpineRepository, seq ports.SequenceRepository, parser ports.Parser) *Service {
	return &Service{
		Files:     files,
		Spine:     spine,
		Sequences: seq,
		Parser:    parser,
		Now:       time.Now,
		locks:     map[string]*sync.Mutex{},
	}
}

// Result is the ingestion summary: never a bare boolean, so skipped rows and
// duplicates stay visible.
type Result struct {
	SourceFileID string           `json:"source_file_id"`
	Reimport     bool             `json:"reimport"`
	Inserted     int              `json:"inserted"`
	Skipped      int              `json:"skipped"`
	RowErrors    []ports.RowError `json:"row_errors,omitempty"`
}

// ExistingSource reports whether content was imported before, by whole-file
// hash. Callers use it to offer a confirmable re-import instead of blocking.
func (s *Service) ExistingSource(ctx context.Context, content []byte) (*domain.SourceFile, error) {
	return s.Files.GetByHash(ctx, hashing.File(content))
}

// Import ingests one export file. Parse failures commit nothing; row-level
// anomalies are reported in the result and never abort the batch.
func (s *Service) Import(ctx context.Context, filename string, content []byte) (Result, error) {
	parsed, err := s.Parser.Parse(content)
	if err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", filename, err)
	}

	fileHash := hashing.File(content)
	src, err := s.Files.GetByHash(ctx, fileHash)
	if err != nil {
		return Result{}, fmt.Errorf("look up source by hash: %w", err)
	}
	reimport := src != nil
	if src == nil {
		n, err := s.Sequences.Next(ctx, "SRC")
		if err != nil {
			return Result{}, err
		}
		src = &domain.SourceFile{
			ID:         fmt.Sprintf("SRC-%d", n),
			Filename:   filename,
			FileHash:   fileHash,
			ImportedAt: s.Now().UTC(),
		}
		if err := s.Files.Create(ctx, src); err != nil {
			return Result{}, fmt.Errorf("create source file: %w", err)
		}
	}

	// Imports for the same source are a critical section: the existing-key
	// set computed below would go stale under a concurrent import.
	lock := s.sourceLock(src.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.Spine.ListBySource(ctx, src.ID)
	if err != nil {
		return Result{}, fmt.Errorf("load existing records: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[recordKey(src.ID, r.Timestamp, r.TimestampUnknown, r.OriginalContent)] = struct{}{}
	}

	res := Result{SourceFileID: src.ID, Reimport: reimport, RowErrors: parsed.RowErrors}
	now := s.Now().UTC()
	var batch []*domain.SpineRecord
	for _, c := range parsed.Records {
		key := recordKey(src.ID, c.Timestamp, c.TimestampUnknown, c.Message)
		if _, dup := seen[key]; dup {
			res.Skipped++
			continue
		}
		seen[key] = struct{}{}
		n, err := s.Sequences.Next(ctx, "SPINE-"+src.ID)
		if err != nil {
			return Result{}, err
		}
		batch = append(batch, &domain.SpineRecord{
			ID:               fmt.Sprintf("SPINE-%s-%06d", src.ID, n),
			SourceFileID:     src.ID,
			Timestamp:        c.Timestamp,
			TimestampUnknown: c.TimestampUnknown,
			Sender:           c.Sender,
			Recipient:        c.Recipient,
			Counterpart:      c.Counterpart,
			Platform:         c.Platform,
			Category:         categorize.Categorize(c.Message),
			OriginalContent:  c.Message,
			Direction:        c.Direction,
			IsCall:           c.IsCall,
			CallSeconds:      c.CallSeconds,
			CreatedAt:        now,
		})
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	// Once the insert begins it runs to completion; a half-applied batch
	// would leave the dedup key set inconsistent for the next import.
	insertCtx := context.WithoutCancel(ctx)
	if err := s.Spine.CreateBatch(insertCtx, batch); err != nil {
		return Result{}, fmt.Errorf("insert batch: %w", err)
	}
	res.Inserted = len(batch)

	if err := s.updateStats(insertCtx, src.ID, append(existing, batch...)); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (s *Service) updateStats(ctx context.Context, sourceID string, recs []*domain.SpineRecord) error {
	var earliest, latest *time.Time
	for _, r := range recs {
		if r.TimestampUnknown {
			continue
		}
		t := r.Timestamp
		if earliest == nil || t.Before(*earliest) {
			earliest = &t
		}
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	if err := s.Files.UpdateStats(ctx, sourceID, len(recs), earliest, latest); err != nil {
		return fmt.Errorf("update source stats: %w", err)
	}
	return nil
}

func (s *Service) sourceLock(sourceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sourceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sourceID] = l
	}
	return l
}

// recordKey is the dedup key: source, canonical timestamp and the full
// content hash. Hashing the whole cleaned content rules out the
// false-positive class where two distinct same-second messages share a
// prefix; near-duplicate transcription noise is accepted as distinct.
func recordKey(sourceID string, ts time.Time, tsUnknown bool, content string) string {
	stamp := "unknown"
	if !tsUnknown {
		stamp = ts.UTC().Format(time.RFC3339)
	}
	return sourceID + "|" + stamp + "|" + hashing.Content([]byte(content))
}
