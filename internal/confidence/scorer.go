package confidence

import (
	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

// Point values and level thresholds for the deterministic confidence score.
const (
	pointsPublishDate      = 2
	pointsKnownSource      = 2
	pointsEvidenceStrong   = 2
	pointsEvidenceSome     = 1
	pointsSecondaryInsight = 1
	pointsFootprint        = 1

	evidenceStrongCount = 3
	correctionsPerPoint = 3

	thresholdHigh   = 7
	thresholdMedium = 4
)

// Scorer computes confidence from observable signals, fully overriding any
// self-assessment the upstream extractor reported. The original upstream
// value is captured once for calibration audits.
type Scorer struct {
	catalog *taxonomy.Catalog
}

func New(catalog *taxonomy.Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Score assigns the confidence level and retains the per-signal breakdown.
func (s *Scorer) Score(rec *record.Record) {
	// Before the first enrichment the confidence field still holds the
	// extractor's own estimate; park it before overriding. The pipeline
	// version stamp marks an already-enriched record, so a re-run never
	// mistakes our own computed level for the upstream one, even when the
	// first run produced zero signals.
	if rec.Audit.PipelineVersion == "" && rec.Audit.UpstreamConfidence == "" && rec.Confidence != "" {
		rec.Audit.UpstreamConfidence = rec.Confidence
	}

	var signals []record.ScoreSignal
	add := func(name string, points int) {
		signals = append(signals, record.ScoreSignal{Name: name, Points: points})
	}

	if rec.PublishDate != "" {
		add("publish_date_present", pointsPublishDate)
	}
	if s.catalog.IsKnownSource(rec.SourceClassification) {
		add("known_source", pointsKnownSource)
	}
	switch {
	case len(rec.EvidenceBullets) >= evidenceStrongCount:
		add("evidence_bullets", pointsEvidenceStrong)
	case len(rec.EvidenceBullets) >= 1:
		add("evidence_bullets", pointsEvidenceSome)
	}
	if len(rec.Insights) >= 2 {
		add("secondary_insight", pointsSecondaryInsight)
	}
	if len(rec.RegionsFootprint) > 0 {
		add("footprint_regions", pointsFootprint)
	}
	if penalty := rec.Audit.CorrectionCount() / correctionsPerPoint; penalty > 0 {
		add("normalization_corrections", -penalty)
	}
	if rec.Audit.DateBackfilled {
		add("date_backfilled", -1)
	}

	score := 0
	for _, signal := range signals {
		score += signal.Points
	}

	rec.Audit.ConfidenceScore = score
	rec.Audit.ConfidenceSignals = signals
	rec.Confidence = levelFor(score)
}

func levelFor(score int) string {
	switch {
	case score >= thresholdHigh:
		return record.LevelHigh
	case score >= thresholdMedium:
		return record.LevelMedium
	default:
		return record.LevelLow
	}
}
