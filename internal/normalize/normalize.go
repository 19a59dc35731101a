package normalize

import (
	"fmt"
	"net/url"
	"strings"

	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

// Options carries the per-record inputs supplied by external collaborators.
type Options struct {
	// DateHint fills a missing publish date; it never overwrites one.
	DateHint string
	// SourceURLOverride is a human-supplied URL and always wins over any
	// extracted value.
	SourceURLOverride string
}

// Normalizer standardizes the extracted fields of a record in place. It never
// fails: malformed values are replaced with safe defaults and every change
// appends a correction code to the audit trail. Normalized values are fixed
// points, so a second pass fires zero corrections.
type Normalizer struct {
	catalog *taxonomy.Catalog
}

func New(catalog *taxonomy.Catalog) *Normalizer {
	return &Normalizer{catalog: catalog}
}

// Apply runs every field normalization step.
func (n *Normalizer) Apply(rec *record.Record, opts Options) {
	n.normalizeDate(rec, opts.DateHint)
	n.normalizeURL(rec, opts.SourceURLOverride)
	n.normalizeActorType(rec)
	rec.Companies = n.normalizeCompanies(rec, rec.Companies)
	rec.GovernmentEntities = n.normalizeGovEntities(rec, rec.GovernmentEntities)
	rec.CountryMentions = n.normalizeCountries(rec, rec.CountryMentions)
	rec.Title = strings.TrimSpace(rec.Title)
}

func (n *Normalizer) normalizeDate(rec *record.Record, hint string) {
	raw := strings.TrimSpace(rec.PublishDate)
	if raw != "" {
		if normalized, ok := ParseDate(raw); ok {
			if normalized != raw {
				rec.Audit.AddCorrection(fmt.Sprintf("publish_date: normalized %q", raw))
			}
			rec.PublishDate = normalized
			return
		}
		// A dropped date leaves the field empty, so the hint below may still
		// backfill it. The backfill flag keeps its confidence penalty.
		rec.PublishDate = ""
		rec.Audit.AddCorrection(fmt.Sprintf("publish_date: dropped unparseable %q", raw))
	}

	// An existing date is never overwritten; the hint only backfills.
	if hinted, ok := ParseDate(strings.TrimSpace(hint)); ok {
		rec.PublishDate = hinted
		rec.Audit.DateBackfilled = true
	}
}

func (n *Normalizer) normalizeURL(rec *record.Record, override string) {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		if trimmed != rec.SourceURL {
			rec.Audit.AddCorrection("source_url: replaced by supplied override")
		}
		rec.SourceURL = trimmed
		return
	}

	raw := strings.TrimSpace(rec.SourceURL)
	if raw == "" {
		rec.SourceURL = ""
		return
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		// The extractor is never trusted to invent a URL; a broken one is
		// dropped rather than repaired.
		rec.SourceURL = ""
		rec.Audit.AddCorrection(fmt.Sprintf("source_url: dropped invalid %q", raw))
		return
	}
	rec.SourceURL = raw
}

func (n *Normalizer) normalizeActorType(rec *record.Record) {
	raw := strings.ToLower(strings.TrimSpace(rec.ActorType))
	if canonical, ok := n.catalog.ActorTypeAliases[raw]; ok {
		if canonical != rec.ActorType {
			rec.Audit.AddCorrection(fmt.Sprintf("actor_type: mapped %q", rec.ActorType))
		}
		rec.ActorType = canonical
		return
	}
	if rec.ActorType != "other" {
		rec.Audit.AddCorrection(fmt.Sprintf("actor_type: unrecognized %q, defaulted to other", rec.ActorType))
	}
	rec.ActorType = "other"
}

func (n *Normalizer) normalizeCompanies(rec *record.Record, raw []string) []string {
	if len(raw) == 0 {
		return raw
	}

	result := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		name := strings.TrimSpace(entry)
		if name == "" {
			continue
		}

		stripped := n.stripLegalSuffix(name)
		canonical := stripped
		if aliased, ok := n.catalog.CompanyAliases[strings.ToLower(stripped)]; ok {
			canonical = aliased
		}
		if canonical != entry {
			rec.Audit.AddCorrection(fmt.Sprintf("companies: canonicalized %q", entry))
		}

		key := strings.ToLower(canonical)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, canonical)
	}
	return result
}

func (n *Normalizer) stripLegalSuffix(name string) string {
	current := strings.TrimSpace(strings.TrimRight(name, ",."))
	for {
		lowered := strings.ToLower(current)
		trimmed := current
		for _, suffix := range n.catalog.CompanySuffixes {
			candidate := " " + suffix
			if strings.HasSuffix(lowered, candidate) {
				trimmed = strings.TrimSpace(current[:len(current)-len(candidate)])
				trimmed = strings.TrimRight(trimmed, ",")
				break
			}
		}
		if trimmed == current {
			return current
		}
		current = trimmed
	}
}

// normalizeGovEntities canonicalizes via the alias table only. Entities are
// never inferred from country context: an empty input list stays empty even
// when the text talks about "the government".
func (n *Normalizer) normalizeGovEntities(rec *record.Record, raw []string) []string {
	if len(raw) == 0 {
		return raw
	}

	result := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		name := strings.TrimSpace(entry)
		if name == "" {
			continue
		}
		canonical := name
		if aliased, ok := n.catalog.GovEntityAliases[strings.ToLower(name)]; ok {
			canonical = aliased
		}
		if canonical != entry {
			rec.Audit.AddCorrection(fmt.Sprintf("government_entities: canonicalized %q", entry))
		}
		key := strings.ToLower(canonical)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, canonical)
	}
	return result
}

func (n *Normalizer) normalizeCountries(rec *record.Record, raw []string) []string {
	if len(raw) == 0 {
		return raw
	}

	result := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		name := strings.TrimSpace(entry)
		if name == "" {
			continue
		}
		canonical := CanonicalCountry(n.catalog, name)
		if canonical != entry {
			rec.Audit.AddCorrection(fmt.Sprintf("country_mentions: canonicalized %q", entry))
		}
		key := strings.ToLower(canonical)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, canonical)
	}
	return result
}

// CanonicalCountry resolves a raw country mention to its canonical name:
// alias table first, then the footprint map's own casing, then title case.
func CanonicalCountry(catalog *taxonomy.Catalog, name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := catalog.CountryAliases[lowered]; ok {
		return canonical
	}
	for known := range catalog.CountryFootprint {
		if strings.ToLower(known) == lowered {
			return known
		}
	}
	return titleCase(lowered)
}

func titleCase(value string) string {
	parts := strings.Fields(value)
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
