package regions

import (
	"reflect"
	"testing"

	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

func TestResolveEmptyInputsStayEmpty(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	rec := &record.Record{Title: "x"}

	r.Resolve(rec)

	if len(rec.RegionsFootprint) != 0 || len(rec.RegionsMentioned) != 0 {
		t.Fatalf("no geography must be invented, got footprint=%v mentioned=%v",
			rec.RegionsFootprint, rec.RegionsMentioned)
	}
}

func TestResolveCountriesImplyRegions(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	rec := &record.Record{
		Title:           "x",
		CountryMentions: []string{"Vietnam", "Germany", "Canada"},
	}

	r.Resolve(rec)

	wantFootprint := []string{"Germany", "Rest of North America", "Rest of Asia-Pacific"}
	if !reflect.DeepEqual(rec.RegionsFootprint, wantFootprint) {
		t.Fatalf("footprint = %v, want %v", rec.RegionsFootprint, wantFootprint)
	}
	wantMentioned := []string{"Europe", "North America", "Asia-Pacific"}
	if !reflect.DeepEqual(rec.RegionsMentioned, wantMentioned) {
		t.Fatalf("mentioned = %v, want %v", rec.RegionsMentioned, wantMentioned)
	}
}

func TestResolveUnmappedCountryFallsToCatchAll(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	rec := &record.Record{Title: "x", CountryMentions: []string{"Elbonia"}}

	r.Resolve(rec)

	if !reflect.DeepEqual(rec.RegionsFootprint, []string{taxonomy.FootprintCatchAll}) {
		t.Fatalf("footprint = %v, want catch-all", rec.RegionsFootprint)
	}
	if !reflect.DeepEqual(rec.RegionsMentioned, []string{"Global"}) {
		t.Fatalf("mentioned = %v, want [Global]", rec.RegionsMentioned)
	}
	if !hasFlag(rec, "unmapped_country: Elbonia") {
		t.Fatalf("missing unmapped flag, got %v", rec.Audit.Flags)
	}
}

func TestResolveSuppressesHintOnlyCollisionRegion(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	rec := &record.Record{
		Title:           "European OEMs respond to competition",
		Keywords:        []string{"Chery", "BYD", "Chinese-owned brands"},
		CountryMentions: []string{"France", "Germany"},
	}

	r.Resolve(rec)

	for _, region := range rec.RegionsFootprint {
		if region == "China" {
			t.Fatalf("China leaked into footprint: %v", rec.RegionsFootprint)
		}
	}
	wantFootprint := []string{"Germany", "France"}
	if !reflect.DeepEqual(rec.RegionsFootprint, wantFootprint) {
		t.Fatalf("footprint = %v, want %v", rec.RegionsFootprint, wantFootprint)
	}
	if !hasFlag(rec, "region_hint_suppressed: China") {
		t.Fatalf("missing suppression flag, got %v", rec.Audit.Flags)
	}
}

func TestResolveKeepsCollisionRegionWhenCountryConfirms(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	rec := &record.Record{
		Title:           "x",
		Keywords:        []string{"Chinese market share"},
		CountryMentions: []string{"China"},
	}

	r.Resolve(rec)

	if !reflect.DeepEqual(rec.RegionsFootprint, []string{"China"}) {
		t.Fatalf("footprint = %v, want [China]", rec.RegionsFootprint)
	}
	if hasFlag(rec, "region_hint_suppressed: China") {
		t.Fatalf("suppression flag must not fire when a country confirms: %v", rec.Audit.Flags)
	}
}

func TestResolveNonCollisionHintSurvives(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	rec := &record.Record{
		Title:    "x",
		Insights: []string{"Thailand remains the main natural rubber origin"},
	}

	r.Resolve(rec)

	if !reflect.DeepEqual(rec.RegionsFootprint, []string{"Thailand"}) {
		t.Fatalf("footprint = %v, want [Thailand]", rec.RegionsFootprint)
	}
}

func TestResolveNotesAreIgnored(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	rec := &record.Record{
		Title: "x",
		Notes: "reviewer says check the japan angle",
	}

	r.Resolve(rec)

	if len(rec.RegionsFootprint) != 0 {
		t.Fatalf("notes must not feed the hint scan, got %v", rec.RegionsFootprint)
	}
}

func TestResolveLegacyRussiaBucket(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())

	explicit := &record.Record{
		Title:           "x",
		CountryMentions: []string{"Germany", "Russia"},
	}
	r.Resolve(explicit)
	wantExplicit := []string{taxonomy.BucketEurope, taxonomy.LegacyEuropeRussia}
	if !reflect.DeepEqual(explicit.RegionsMentioned, wantExplicit) {
		t.Fatalf("mentioned = %v, want %v", explicit.RegionsMentioned, wantExplicit)
	}

	// Hint-only Russia: the legacy combined label collapses onto Europe.
	hinted := &record.Record{
		Title:           "x",
		Keywords:        []string{"russian market exit"},
		CountryMentions: []string{"Germany"},
	}
	r.Resolve(hinted)
	if !reflect.DeepEqual(hinted.RegionsMentioned, []string{taxonomy.BucketEurope}) {
		t.Fatalf("mentioned = %v, want [%s]", hinted.RegionsMentioned, taxonomy.BucketEurope)
	}
}

func hasFlag(rec *record.Record, flag string) bool {
	for _, f := range rec.Audit.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
