package themes

import (
	"strings"

	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

// Signal category names as they appear in the audit breakdown.
const (
	groupCompanies = "companies"
	groupKeywords  = "keywords"
	groupTopics    = "topics"
	groupRegions   = "regions"
)

// Detector evaluates every macro-theme rule against a record. Stateless per
// record: the result depends only on the normalized fields, the resolved
// footprint regions and the rule set.
type Detector struct {
	catalog *taxonomy.Catalog
	rules   *RuleSet
}

func NewDetector(catalog *taxonomy.Catalog, rules *RuleSet) *Detector {
	return &Detector{catalog: catalog, rules: rules}
}

// Detect assigns macro themes, rollup labels and the per-theme signal
// breakdown. Outputs are replaced wholesale with deterministic values.
func (d *Detector) Detect(rec *record.Record) {
	text := keywordText(rec)

	var themes []string
	var rollups []string
	signals := make(map[string][]string)

	for _, rule := range d.rules.rules {
		matched, matchedCompanies := evaluateGroups(rule, rec, text)
		if len(matched) < rule.MinGroups {
			continue
		}
		if rule.antiHits != nil && len(rule.antiHits.Match([]byte(text))) > 0 && len(matched) <= rule.AntiOverride {
			continue
		}
		if len(rule.RequiredRegions) > 0 && !intersects(rec.RegionsFootprint, rule.RequiredRegions) {
			continue
		}
		if rule.PremiumGate && !d.anyPremium(matchedCompanies) {
			continue
		}

		themes = append(themes, rule.Name)
		signals[rule.Name] = matched
		if rule.Rollup != "" {
			rollups = appendUnique(rollups, rule.Rollup)
		}
	}

	rec.MacroThemes = themes
	rec.ThemeRollups = rollups
	if len(signals) == 0 {
		rec.Audit.ThemeSignals = nil
	} else {
		rec.Audit.ThemeSignals = signals
	}
}

// evaluateGroups returns the names of signal categories with at least one
// hit, in the fixed companies/keywords/topics/regions order, plus the
// companies that matched (for the premium gate).
func evaluateGroups(rule compiledRule, rec *record.Record, text string) ([]string, []string) {
	var matched []string

	var matchedCompanies []string
	for _, company := range rec.Companies {
		if _, ok := rule.companySet[strings.ToLower(company)]; ok {
			matchedCompanies = append(matchedCompanies, company)
		}
	}
	if len(matchedCompanies) > 0 {
		matched = append(matched, groupCompanies)
	}

	if rule.keywordHits != nil && len(rule.keywordHits.Match([]byte(text))) > 0 {
		matched = append(matched, groupKeywords)
	}

	if len(rule.Topics) > 0 && intersects(rec.Topics, rule.Topics) {
		matched = append(matched, groupTopics)
	}

	if len(rule.Regions) > 0 && intersects(rec.RegionsFootprint, rule.Regions) {
		matched = append(matched, groupRegions)
	}

	return matched, matchedCompanies
}

// keywordText joins the fields the keyword patterns search. The free-text
// notes field is excluded: it collects reviewer chatter and would flood the
// rules with low-signal matches.
func keywordText(rec *record.Record) string {
	parts := make([]string, 0, 1+len(rec.EvidenceBullets)+len(rec.Insights)+len(rec.Keywords))
	parts = append(parts, rec.Title)
	parts = append(parts, rec.EvidenceBullets...)
	parts = append(parts, rec.Insights...)
	parts = append(parts, rec.Keywords...)
	return strings.ToLower(strings.Join(parts, " | "))
}

func (d *Detector) anyPremium(companies []string) bool {
	for _, company := range companies {
		if d.catalog.IsPremiumEntity(company) {
			return true
		}
	}
	return false
}

func intersects(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
