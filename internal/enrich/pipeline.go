package enrich

import (
	"github.com/rs/zerolog"

	"horse.fit/intel-pipeline/internal/confidence"
	"horse.fit/intel-pipeline/internal/globaltime"
	"horse.fit/intel-pipeline/internal/normalize"
	"horse.fit/intel-pipeline/internal/priority"
	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/regions"
	"horse.fit/intel-pipeline/internal/taxonomy"
	"horse.fit/intel-pipeline/internal/themes"
)

// Version stamps enriched records so calibration audits can tell rule
// generations apart.
const Version = "2"

// Options carries the external inputs forwarded to the normalizer.
type Options struct {
	DateHint          string
	SourceURLOverride string
}

// Pipeline runs the enrichment steps in their one valid order: normalize,
// resolve regions, boost priority, score confidence, detect themes. Later
// steps read earlier steps' outputs (region resolution feeds both scoring and
// theme detection), so the order is a correctness requirement, not a style
// choice.
type Pipeline struct {
	normalizer *normalize.Normalizer
	regions    *regions.Resolver
	booster    *priority.Booster
	scorer     *confidence.Scorer
	detector   *themes.Detector
	logger     zerolog.Logger
}

func NewPipeline(catalog *taxonomy.Catalog, rules *themes.RuleSet, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		normalizer: normalize.New(catalog),
		regions:    regions.NewResolver(catalog),
		booster:    priority.New(catalog),
		scorer:     confidence.New(catalog),
		detector:   themes.NewDetector(catalog, rules),
		logger:     logger,
	}
}

// Enrich mutates the record in place. Safe to re-run: computed fields are
// recomputed to identical values and audit entries are appended at most once.
func (p *Pipeline) Enrich(rec *record.Record, opts Options) {
	p.normalizer.Apply(rec, normalize.Options{
		DateHint:          opts.DateHint,
		SourceURLOverride: opts.SourceURLOverride,
	})
	p.regions.Resolve(rec)
	p.booster.Boost(rec)
	p.scorer.Score(rec)
	p.detector.Detect(rec)

	if rec.ReviewStatus == "" {
		rec.ReviewStatus = record.ReviewPending
	}
	rec.Audit.PipelineVersion = Version
	if rec.Audit.EnrichedAt == "" {
		rec.Audit.EnrichedAt = globaltime.UTC().Format("2006-01-02T15:04:05Z")
	}

	p.logger.Debug().
		Str("record_id", rec.ID).
		Str("priority", rec.Priority).
		Str("confidence", rec.Confidence).
		Int("themes", len(rec.MacroThemes)).
		Int("footprint_regions", len(rec.RegionsFootprint)).
		Msg("record enriched")
}
