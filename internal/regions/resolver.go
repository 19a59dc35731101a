package regions

import (
	"fmt"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

// Resolver produces the two-tier geography of a record: the operational
// footprint list (individual countries of business relevance plus
// sub-regional buckets) and the coarse display buckets derived from it.
type Resolver struct {
	catalog *taxonomy.Catalog

	// matcher scans free text for every region hint term at once; hintRegion
	// maps each pattern index back onto its footprint region.
	matcher    *ahocorasick.Matcher
	hintRegion []string
}

func NewResolver(catalog *taxonomy.Catalog) *Resolver {
	var terms []string
	var owners []string
	for _, region := range catalog.FootprintRegions {
		for _, term := range catalog.RegionHints[region] {
			terms = append(terms, strings.ToLower(term))
			owners = append(owners, region)
		}
	}
	return &Resolver{
		catalog:    catalog,
		matcher:    ahocorasick.NewStringMatcher(terms),
		hintRegion: owners,
	}
}

// Resolve computes regions_mentioned and regions_relevant_to_footprint from
// the normalized country mentions and the free-text fields. Both outputs are
// pure functions of those inputs; with no countries and no text hints both
// stay empty, no default geography is invented.
func (r *Resolver) Resolve(rec *record.Record) {
	implied := r.impliedRegions(rec)
	hinted := r.hintedRegions(rec)

	merged := make(map[string]struct{}, len(implied)+len(hinted))
	for region := range implied {
		merged[region] = struct{}{}
	}
	for region := range hinted {
		merged[region] = struct{}{}
	}

	// Leakage guard: a hint-only match on a collision-prone region is a
	// brand-name artifact, not a geography signal.
	for region := range hinted {
		if _, alsoImplied := implied[region]; alsoImplied {
			continue
		}
		if r.catalog.IsCollisionProne(region) {
			delete(merged, region)
			rec.Audit.AddFlag(fmt.Sprintf("region_hint_suppressed: %s", region))
		}
	}

	rec.RegionsFootprint = r.orderedFootprint(merged)
	rec.RegionsMentioned = r.displayBuckets(rec, merged)
}

func (r *Resolver) impliedRegions(rec *record.Record) map[string]struct{} {
	implied := make(map[string]struct{}, len(rec.CountryMentions))
	for _, country := range rec.CountryMentions {
		region, ok := r.catalog.CountryFootprint[country]
		if !ok {
			region = taxonomy.FootprintCatchAll
			rec.Audit.AddFlag(fmt.Sprintf("unmapped_country: %s", country))
		}
		implied[region] = struct{}{}
	}
	return implied
}

func (r *Resolver) hintedRegions(rec *record.Record) map[string]struct{} {
	text := hintText(rec)
	if text == "" {
		return nil
	}
	hinted := make(map[string]struct{})
	for _, hit := range r.matcher.Match([]byte(text)) {
		hinted[r.hintRegion[hit]] = struct{}{}
	}
	return hinted
}

// hintText joins the free-text fields the hint scan covers. The notes field
// is deliberately absent.
func hintText(rec *record.Record) string {
	var parts []string
	parts = append(parts, rec.Keywords...)
	parts = append(parts, rec.EvidenceBullets...)
	parts = append(parts, rec.Insights...)
	return strings.ToLower(strings.Join(parts, " | "))
}

func (r *Resolver) orderedFootprint(regions map[string]struct{}) []string {
	if len(regions) == 0 {
		return nil
	}
	ordered := make([]string, 0, len(regions))
	for _, region := range r.catalog.FootprintRegions {
		if _, ok := regions[region]; ok {
			ordered = append(ordered, region)
		}
	}
	return ordered
}

func (r *Resolver) displayBuckets(rec *record.Record, regions map[string]struct{}) []string {
	if len(regions) == 0 {
		return nil
	}

	buckets := make(map[string]struct{}, len(regions))
	for region := range regions {
		bucket, ok := r.catalog.FootprintBucket[region]
		if !ok {
			bucket = region
		}
		buckets[bucket] = struct{}{}
	}

	// The legacy combined label survives only when Russia is explicitly in
	// the country mentions; otherwise it collapses onto the generic bucket.
	if _, ok := buckets[taxonomy.LegacyEuropeRussia]; ok && !mentionsRussia(rec) {
		delete(buckets, taxonomy.LegacyEuropeRussia)
		buckets[taxonomy.BucketEurope] = struct{}{}
	}

	ordered := make([]string, 0, len(buckets))
	for _, bucket := range r.catalog.DisplayBuckets {
		if _, ok := buckets[bucket]; ok {
			ordered = append(ordered, bucket)
		}
	}
	return ordered
}

func mentionsRussia(rec *record.Record) bool {
	for _, country := range rec.CountryMentions {
		if country == "Russia" {
			return true
		}
	}
	return false
}
