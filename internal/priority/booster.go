package priority

import (
	"strings"

	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

// Escalation reason codes. Appended once per record regardless of how often
// the pipeline re-runs.
const (
	ReasonWatchOrgNamed        = "watch_org_named"
	ReasonFootprintDomainTerm  = "footprint_domain_term"
	ReasonFootprintKeyCustomer = "footprint_key_customer"
)

// Booster escalates a record's baseline priority to High when an escalation
// rule holds. Escalation is one-directional: nothing here ever downgrades.
type Booster struct {
	catalog *taxonomy.Catalog
}

func New(catalog *taxonomy.Catalog) *Booster {
	return &Booster{catalog: catalog}
}

// Boost normalizes the baseline priority and applies the escalation rules.
func (b *Booster) Boost(rec *record.Record) {
	rec.Priority = normalizeLevel(rec.Priority)

	if b.namesWatchOrg(rec) {
		escalate(rec, ReasonWatchOrgNamed)
	}
	if len(rec.RegionsFootprint) > 0 {
		if b.hasPriorityTerm(rec) {
			escalate(rec, ReasonFootprintDomainTerm)
		}
		if b.hasKeyCustomer(rec) {
			escalate(rec, ReasonFootprintKeyCustomer)
		}
	}
}

func escalate(rec *record.Record, reason string) {
	rec.Priority = record.LevelHigh
	rec.Audit.AddPriorityReason(reason)
}

func (b *Booster) namesWatchOrg(rec *record.Record) bool {
	for _, company := range rec.Companies {
		if b.catalog.NamesWatchOrg(company) {
			return true
		}
	}
	return b.catalog.NamesWatchOrg(rec.Title)
}

func (b *Booster) hasPriorityTerm(rec *record.Record) bool {
	for _, keyword := range rec.Keywords {
		if containsTermFold(b.catalog.PriorityTerms, keyword) {
			return true
		}
	}
	for _, topic := range rec.Topics {
		if containsTermFold(b.catalog.PriorityTerms, topic) {
			return true
		}
	}
	return false
}

func (b *Booster) hasKeyCustomer(rec *record.Record) bool {
	for _, company := range rec.Companies {
		if b.catalog.IsKeyCustomer(company) {
			return true
		}
	}
	return false
}

func containsTermFold(terms []string, value string) bool {
	trimmed := strings.TrimSpace(value)
	for _, term := range terms {
		if strings.EqualFold(term, trimmed) {
			return true
		}
	}
	return false
}

func normalizeLevel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return record.LevelHigh
	case "medium":
		return record.LevelMedium
	default:
		return record.LevelLow
	}
}
