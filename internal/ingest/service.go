package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"horse.fit/intel-pipeline/internal/dedupe"
	"horse.fit/intel-pipeline/internal/enrich"
	"horse.fit/intel-pipeline/internal/globaltime"
	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/store"
	recordschema "horse.fit/intel-pipeline/schema"
)

// Service ties the enrichment pipeline, the post-pipeline schema validator,
// the duplicate resolver and the record store into one ingest unit.
type Service struct {
	store    *store.Memory
	pipeline *enrich.Pipeline
	resolver *dedupe.Resolver
	logger   zerolog.Logger
}

// Request is one raw submission plus the optional collaborator inputs.
type Request struct {
	Record record.Record
	// DateHint comes from a separate header/metadata extractor; it only
	// fills a missing publish date.
	DateHint string
	// SourceURLOverride is human-supplied and always wins.
	SourceURLOverride string
}

// Result reports what happened to the submission.
type Result struct {
	ID          string   `json:"id"`
	Stored      bool     `json:"stored"`
	Blocked     bool     `json:"blocked"`
	BlockedBy   string   `json:"blocked_by,omitempty"`
	Duplicate   bool     `json:"duplicate"`
	CanonicalID string   `json:"canonical_id,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Confidence  string   `json:"confidence,omitempty"`
	MacroThemes []string `json:"macro_themes,omitempty"`
}

func NewService(st *store.Memory, pipeline *enrich.Pipeline, resolver *dedupe.Resolver, logger zerolog.Logger) *Service {
	return &Service{
		store:    st,
		pipeline: pipeline,
		resolver: resolver,
		logger:   logger,
	}
}

// IngestOne enriches, validates and duplicate-resolves a single submission.
// The dedup decision and the store mutation happen under one store lock so
// concurrent submissions cannot each see the other as unique.
func (s *Service) IngestOne(ctx context.Context, req Request) (Result, error) {
	if s == nil || s.store == nil {
		return Result{}, fmt.Errorf("ingest service is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	rec := req.Record
	if strings.TrimSpace(rec.Title) == "" {
		return Result{}, fmt.Errorf("title is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = globaltime.UTC()
	}

	s.pipeline.Enrich(&rec, enrich.Options{
		DateHint:          req.DateHint,
		SourceURLOverride: req.SourceURLOverride,
	})

	// Schema validation is the downstream collaborator's contract; it runs
	// strictly after enrichment and gates persistence.
	if err := recordschema.ValidateEnrichedRecord(&rec); err != nil {
		return Result{}, fmt.Errorf("enriched record failed validation: %w", err)
	}

	var decision dedupe.Decision
	err := s.store.Update(func(tx *store.Tx) error {
		decision = s.resolver.Resolve(&rec, tx.Records())
		if !decision.Persist() {
			return nil
		}
		return tx.Insert(&rec)
	})
	if err != nil {
		return Result{}, fmt.Errorf("store record %s: %w", rec.ID, err)
	}

	result := Result{
		ID:          rec.ID,
		Stored:      decision.Persist(),
		Blocked:     decision.Blocked,
		BlockedBy:   decision.BlockedBy,
		Duplicate:   rec.IsDuplicate,
		CanonicalID: decision.CanonicalID,
		Priority:    rec.Priority,
		Confidence:  rec.Confidence,
		MacroThemes: rec.MacroThemes,
	}

	s.logger.Info().
		Str("record_id", rec.ID).
		Bool("stored", result.Stored).
		Bool("blocked", result.Blocked).
		Bool("duplicate", result.Duplicate).
		Str("priority", rec.Priority).
		Str("confidence", rec.Confidence).
		Msg("ingest completed")

	return result, nil
}
