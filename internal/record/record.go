package record

import "time"

// Priority and confidence levels, ordered Low < Medium < High.
const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

// Review lifecycle states.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Record is one extracted intelligence item. The extracted fields arrive from
// an upstream extractor and are standardized in place; the computed fields are
// a pure function of the normalized fields plus the global rule tables, so
// re-running enrichment on an already-enriched record changes nothing.
type Record struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Title                string   `json:"title"`
	SourceClassification string   `json:"source_classification"`
	PublishDate          string   `json:"publish_date,omitempty"`
	ActorType            string   `json:"actor_type,omitempty"`
	Companies            []string `json:"companies,omitempty"`
	CountryMentions      []string `json:"country_mentions,omitempty"`
	Topics               []string `json:"topics,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	EvidenceBullets      []string `json:"evidence_bullets,omitempty"`
	Insights             []string `json:"insights,omitempty"`
	GovernmentEntities   []string `json:"government_entities,omitempty"`
	SourceURL            string   `json:"source_url,omitempty"`
	Notes                string   `json:"notes,omitempty"`

	Priority         string   `json:"priority,omitempty"`
	Confidence       string   `json:"confidence,omitempty"`
	MacroThemes      []string `json:"macro_themes,omitempty"`
	ThemeRollups     []string `json:"theme_rollups,omitempty"`
	RegionsMentioned []string `json:"regions_mentioned,omitempty"`
	RegionsFootprint []string `json:"regions_relevant_to_footprint,omitempty"`

	Audit Audit `json:"audit"`

	ReviewStatus string `json:"review_status,omitempty"`
	IsDuplicate  bool   `json:"is_duplicate,omitempty"`
	DuplicateOf  string `json:"duplicate_of,omitempty"`
}

// Audit is the append-only trail the pipeline leaves behind. Lists only grow
// and entries are never rewritten; deterministic breakdowns (score signals,
// theme signals) are recomputed to identical values on every run.
type Audit struct {
	PipelineVersion    string              `json:"pipeline_version,omitempty"`
	EnrichedAt         string              `json:"enriched_at,omitempty"`
	Corrections        []string            `json:"corrections,omitempty"`
	DateBackfilled     bool                `json:"date_backfilled,omitempty"`
	PriorityReasons    []string            `json:"priority_reasons,omitempty"`
	UpstreamConfidence string              `json:"upstream_confidence,omitempty"`
	ConfidenceScore    int                 `json:"confidence_score,omitempty"`
	ConfidenceSignals  []ScoreSignal       `json:"confidence_signals,omitempty"`
	ThemeSignals       map[string][]string `json:"theme_signals,omitempty"`
	Flags              []string            `json:"flags,omitempty"`
}

// ScoreSignal is one line of the confidence breakdown.
type ScoreSignal struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// AddCorrection appends a normalization correction code once.
func (a *Audit) AddCorrection(code string) {
	a.Corrections = appendOnce(a.Corrections, code)
}

// AddPriorityReason appends a priority escalation reason code once.
func (a *Audit) AddPriorityReason(code string) {
	a.PriorityReasons = appendOnce(a.PriorityReasons, code)
}

// AddFlag appends a diagnostic flag once.
func (a *Audit) AddFlag(code string) {
	a.Flags = appendOnce(a.Flags, code)
}

// CorrectionCount reports how many normalization corrections have fired over
// the record's lifetime. Feeds the confidence penalty.
func (a *Audit) CorrectionCount() int {
	return len(a.Corrections)
}

func appendOnce(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

// LevelOrdinal maps a confidence or priority level onto a comparable rank.
// Unknown levels rank below Low.
func LevelOrdinal(level string) int {
	switch level {
	case LevelHigh:
		return 3
	case LevelMedium:
		return 2
	case LevelLow:
		return 1
	default:
		return 0
	}
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Companies = cloneStrings(r.Companies)
	clone.CountryMentions = cloneStrings(r.CountryMentions)
	clone.Topics = cloneStrings(r.Topics)
	clone.Keywords = cloneStrings(r.Keywords)
	clone.EvidenceBullets = cloneStrings(r.EvidenceBullets)
	clone.Insights = cloneStrings(r.Insights)
	clone.GovernmentEntities = cloneStrings(r.GovernmentEntities)
	clone.MacroThemes = cloneStrings(r.MacroThemes)
	clone.ThemeRollups = cloneStrings(r.ThemeRollups)
	clone.RegionsMentioned = cloneStrings(r.RegionsMentioned)
	clone.RegionsFootprint = cloneStrings(r.RegionsFootprint)
	clone.Audit.Corrections = cloneStrings(r.Audit.Corrections)
	clone.Audit.PriorityReasons = cloneStrings(r.Audit.PriorityReasons)
	clone.Audit.Flags = cloneStrings(r.Audit.Flags)
	clone.Audit.ConfidenceSignals = append([]ScoreSignal(nil), r.Audit.ConfidenceSignals...)
	if r.Audit.ThemeSignals != nil {
		signals := make(map[string][]string, len(r.Audit.ThemeSignals))
		for theme, groups := range r.Audit.ThemeSignals {
			signals[theme] = cloneStrings(groups)
		}
		clone.Audit.ThemeSignals = signals
	}
	return &clone
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
