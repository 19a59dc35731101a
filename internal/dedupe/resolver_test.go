package dedupe

import (
	"reflect"
	"testing"
	"time"

	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
	}{
		{"BYD Opens Plant in Hungary!", "byd opens plant in hungary"},
		{"  BYD   opens -- plant,  in Hungary ", "byd opens plant in hungary"},
		{"Überraschung: VW's Q3", "überraschung vw s q3"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeTitle(tc.raw); got != tc.want {
			t.Fatalf("NormalizeTitle(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestResolveBlocksExactTitle(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	existing := &record.Record{ID: "keep", Title: "BYD opens plant in Hungary"}
	incoming := &record.Record{ID: "new", Title: "  BYD Opens Plant in Hungary!  "}

	decision := r.Resolve(incoming, []*record.Record{existing})

	if !decision.Blocked || decision.BlockedBy != "keep" {
		t.Fatalf("decision = %+v, want blocked by keep", decision)
	}
	if decision.Persist() {
		t.Fatal("blocked submission must not persist")
	}
}

func TestResolveUniqueTitlePasses(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	existing := &record.Record{ID: "a", Title: "BYD opens plant in Hungary"}
	incoming := &record.Record{ID: "b", Title: "Michelin raises natural rubber outlook"}

	decision := r.Resolve(incoming, []*record.Record{existing})

	if decision.Blocked || decision.CanonicalID != "" || len(decision.DuplicateIDs) != 0 {
		t.Fatalf("unexpected decision %+v", decision)
	}
	if incoming.IsDuplicate {
		t.Fatal("unique record marked duplicate")
	}
}

func TestResolveBelowThresholdIsNotGrouped(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	existing := &record.Record{ID: "a", Title: "BYD opens plant in Hungary"}
	incoming := &record.Record{ID: "b", Title: "BYD opens plants in Hungary"}

	decision := r.Resolve(incoming, []*record.Record{existing})

	if decision.Blocked || decision.CanonicalID != "" {
		t.Fatalf("short titles grouped below threshold: %+v", decision)
	}
}

func TestResolveFuzzyGroupPicksHigherAuthority(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	existing := &record.Record{
		ID:                   "wire",
		Title:                "Tesla delays Mexico gigafactory amid EV demand slowdown",
		SourceClassification: "newswire",
	}
	incoming := &record.Record{
		ID:                   "blog",
		Title:                "Tesla delays its Mexico gigafactory amid EV demand slowdown",
		SourceClassification: "blog",
	}

	decision := r.Resolve(incoming, []*record.Record{existing})

	if decision.Blocked {
		t.Fatalf("fuzzy match must not block: %+v", decision)
	}
	if decision.CanonicalID != "wire" {
		t.Fatalf("canonical = %q, want wire", decision.CanonicalID)
	}
	if !reflect.DeepEqual(decision.DuplicateIDs, []string{"blog"}) {
		t.Fatalf("duplicates = %v", decision.DuplicateIDs)
	}
	if !incoming.IsDuplicate || incoming.DuplicateOf != "wire" {
		t.Fatalf("incoming not linked: dup=%t of=%q", incoming.IsDuplicate, incoming.DuplicateOf)
	}
	if existing.IsDuplicate || existing.DuplicateOf != "" {
		t.Fatalf("canonical marked duplicate: %+v", existing)
	}
}

func TestResolveIncomingCanBecomeCanonical(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	existing := &record.Record{
		ID:                   "old",
		Title:                "Tesla delays Mexico gigafactory amid EV demand slowdown",
		SourceClassification: "blog",
	}
	incoming := &record.Record{
		ID:                   "fresh",
		Title:                "Tesla delays its Mexico gigafactory amid EV demand slowdown",
		SourceClassification: "regulatory_filing",
	}

	decision := r.Resolve(incoming, []*record.Record{existing})

	if decision.CanonicalID != "fresh" {
		t.Fatalf("canonical = %q, want fresh", decision.CanonicalID)
	}
	if !existing.IsDuplicate || existing.DuplicateOf != "fresh" {
		t.Fatalf("existing not demoted: %+v", existing)
	}
	if incoming.IsDuplicate {
		t.Fatal("canonical incoming marked duplicate")
	}
}

func TestMoreCanonicalOrder(t *testing.T) {
	t.Parallel()

	catalog := taxonomy.Default()
	base := func() *record.Record {
		return &record.Record{
			ID:                   "x",
			Title:                "t",
			SourceClassification: "trade_press",
			Confidence:           record.LevelMedium,
			PublishDate:          "2025-03-01",
			CreatedAt:            time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		}
	}

	// Authority beats everything after it.
	a, b := base(), base()
	a.SourceClassification = "newswire"
	b.Confidence = record.LevelHigh
	if !moreCanonical(catalog, a, b) {
		t.Fatal("authority must dominate confidence")
	}

	// Confidence ordinal.
	a, b = base(), base()
	a.Confidence = record.LevelHigh
	if !moreCanonical(catalog, a, b) || moreCanonical(catalog, b, a) {
		t.Fatal("higher confidence must win")
	}

	// Completeness.
	a, b = base(), base()
	a.SourceURL = "https://example.com/a"
	if !moreCanonical(catalog, a, b) {
		t.Fatal("more complete record must win")
	}

	// Later publish date.
	a, b = base(), base()
	a.PublishDate = "2025-03-02"
	if !moreCanonical(catalog, a, b) {
		t.Fatal("later publish date must win")
	}

	// Later creation time.
	a, b = base(), base()
	a.CreatedAt = a.CreatedAt.Add(time.Hour)
	if !moreCanonical(catalog, a, b) {
		t.Fatal("later creation must win")
	}

	// Final ID tiebreak: smaller ID wins, making the order total.
	a, b = base(), base()
	a.ID, b.ID = "aaa", "bbb"
	if !moreCanonical(catalog, a, b) || moreCanonical(catalog, b, a) {
		t.Fatal("smaller ID must win the final tiebreak")
	}
}

func TestResolveRepointsLosersOfDemotedCanonical(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	wire := &record.Record{
		ID:                   "wire",
		Title:                "Tesla delays Mexico gigafactory amid EV demand slowdown",
		SourceClassification: "newswire",
		IsDuplicate:          false,
	}
	blog := &record.Record{
		ID:                   "blog",
		Title:                "Tesla delays its Mexico gigafactory amid EV demand slowdown",
		SourceClassification: "blog",
		IsDuplicate:          true,
		DuplicateOf:          "wire",
	}
	filing := &record.Record{
		ID:                   "filing",
		Title:                "Tesla delays Mexico gigafactory amid EV demand slowdown today",
		SourceClassification: "regulatory_filing",
	}

	decision := r.Resolve(filing, []*record.Record{wire, blog})

	if decision.CanonicalID != "filing" {
		t.Fatalf("canonical = %q, want filing", decision.CanonicalID)
	}
	if !reflect.DeepEqual(decision.DuplicateIDs, []string{"wire"}) {
		t.Fatalf("duplicates = %v, want [wire]", decision.DuplicateIDs)
	}
	if !wire.IsDuplicate || wire.DuplicateOf != "filing" {
		t.Fatalf("prior canonical not demoted: %+v", wire)
	}
	// The blog record lost to wire in an earlier resolution; with wire
	// demoted its link must follow the new canonical, not form a chain.
	if blog.DuplicateOf != "filing" {
		t.Fatalf("stale link survives demotion: blog points at %q", blog.DuplicateOf)
	}
}

func TestResolveSkipsKnownDuplicates(t *testing.T) {
	t.Parallel()

	r := NewResolver(taxonomy.Default())
	loser := &record.Record{
		ID:          "loser",
		Title:       "Tesla delays Mexico gigafactory amid EV demand slowdown today",
		IsDuplicate: true,
		DuplicateOf: "winner",
	}
	incoming := &record.Record{
		ID:    "new",
		Title: "Tesla delays Mexico gigafactory amid EV demand slowdown",
	}

	decision := r.Resolve(incoming, []*record.Record{loser})

	if decision.CanonicalID != "" || incoming.IsDuplicate {
		t.Fatalf("resolved against an already-demoted record: %+v", decision)
	}
}
