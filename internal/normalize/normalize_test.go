package normalize

import (
	"reflect"
	"testing"

	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

func TestParseDateLayouts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2025-03-14", "2025-03-14", true},
		{"2025-03-14T09:30:00Z", "2025-03-14", true},
		{"2025/03/14", "2025-03-14", true},
		{"March 14, 2025", "2025-03-14", true},
		{"14 March 2025", "2025-03-14", true},
		{"03/14/2025", "2025-03-14", true},
		{"14.03.2025", "2025-03-14", true},
		{"next Tuesday", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseDate(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseDate(%q) = (%q, %t), want (%q, %t)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalizeDateDropsUnparseable(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())
	rec := &record.Record{Title: "x", PublishDate: "sometime in spring"}

	n.Apply(rec, Options{})

	if rec.PublishDate != "" {
		t.Fatalf("expected unparseable date dropped, got %q", rec.PublishDate)
	}
	if len(rec.Audit.Corrections) != 1 {
		t.Fatalf("expected 1 correction, got %v", rec.Audit.Corrections)
	}
}

func TestNormalizeDateUnparseableFallsBackToHint(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())
	rec := &record.Record{Title: "x", PublishDate: "sometime in spring"}

	n.Apply(rec, Options{DateHint: "2025-06-30"})

	if rec.PublishDate != "2025-06-30" {
		t.Fatalf("expected hint to fill the dropped date, got %q", rec.PublishDate)
	}
	if !rec.Audit.DateBackfilled {
		t.Fatal("backfill flag not set")
	}
	if len(rec.Audit.Corrections) != 1 {
		t.Fatalf("expected the drop correction, got %v", rec.Audit.Corrections)
	}
}

func TestNormalizeDateHintOnlyBackfills(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())

	withDate := &record.Record{Title: "x", PublishDate: "2025-01-02"}
	n.Apply(withDate, Options{DateHint: "2025-06-30"})
	if withDate.PublishDate != "2025-01-02" {
		t.Fatalf("hint must not overwrite an existing date, got %q", withDate.PublishDate)
	}
	if withDate.Audit.DateBackfilled {
		t.Fatal("backfill flag set although no backfill happened")
	}

	missing := &record.Record{Title: "x"}
	n.Apply(missing, Options{DateHint: "2025-06-30"})
	if missing.PublishDate != "2025-06-30" {
		t.Fatalf("expected backfilled date, got %q", missing.PublishDate)
	}
	if !missing.Audit.DateBackfilled {
		t.Fatal("backfill flag not set")
	}
	if len(missing.Audit.Corrections) != 0 {
		t.Fatalf("backfill is not a correction, got %v", missing.Audit.Corrections)
	}
}

func TestNormalizeURLOverrideAlwaysWins(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())
	rec := &record.Record{Title: "x", SourceURL: "https://extracted.example.com/a"}

	n.Apply(rec, Options{SourceURLOverride: "https://curated.example.com/b"})

	if rec.SourceURL != "https://curated.example.com/b" {
		t.Fatalf("override did not win, got %q", rec.SourceURL)
	}
}

func TestNormalizeURLDropsInvalidExtracted(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())
	for _, raw := range []string{"not a url", "ftp://example.com/file", "/relative/path"} {
		rec := &record.Record{Title: "x", SourceURL: raw}
		n.Apply(rec, Options{})
		if rec.SourceURL != "" {
			t.Fatalf("expected invalid URL %q dropped, got %q", raw, rec.SourceURL)
		}
	}
}

func TestNormalizeActorType(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())

	cases := []struct {
		raw  string
		want string
	}{
		{"Automaker", "oem"},
		{"tier-1", "supplier"},
		{"Tech Company", "technology"},
		{"trade group", "industry"},
		{"space agency", "other"},
		{"", "other"},
	}
	for _, tc := range cases {
		rec := &record.Record{Title: "x", ActorType: tc.raw}
		n.Apply(rec, Options{})
		if rec.ActorType != tc.want {
			t.Fatalf("actor type %q normalized to %q, want %q", tc.raw, rec.ActorType, tc.want)
		}
	}
}

func TestNormalizeCompanies(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())
	rec := &record.Record{
		Title:     "x",
		Companies: []string{"Volkswagen AG", "vw", "BYD Auto Co., Ltd.", "Chery"},
	}

	n.Apply(rec, Options{})

	want := []string{"Volkswagen", "BYD", "Chery"}
	if !reflect.DeepEqual(rec.Companies, want) {
		t.Fatalf("companies = %v, want %v", rec.Companies, want)
	}
}

func TestGovernmentEntitiesNeverInferred(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())
	rec := &record.Record{
		Title:           "Government weighs new import rules",
		CountryMentions: []string{"Germany"},
		Notes:           "the government is considering action",
	}

	n.Apply(rec, Options{})

	if len(rec.GovernmentEntities) != 0 {
		t.Fatalf("entities must not be invented, got %v", rec.GovernmentEntities)
	}

	aliased := &record.Record{Title: "x", GovernmentEntities: []string{"eu commission", "KBA"}}
	n.Apply(aliased, Options{})
	want := []string{"European Commission", "KBA"}
	if !reflect.DeepEqual(aliased.GovernmentEntities, want) {
		t.Fatalf("entities = %v, want %v", aliased.GovernmentEntities, want)
	}
}

func TestNormalizeCountries(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())
	rec := &record.Record{
		Title:           "x",
		CountryMentions: []string{"usa", "PRC", "germany", "Deutschland", "elbonia"},
	}

	n.Apply(rec, Options{})

	want := []string{"United States", "China", "Germany", "Elbonia"}
	if !reflect.DeepEqual(rec.CountryMentions, want) {
		t.Fatalf("countries = %v, want %v", rec.CountryMentions, want)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	n := New(taxonomy.Default())
	rec := &record.Record{
		Title:           "  BYD expands in Europe  ",
		PublishDate:     "March 14, 2025",
		ActorType:       "Automaker",
		Companies:       []string{"BYD Auto Co., Ltd."},
		CountryMentions: []string{"prc"},
		SourceURL:       "not a url",
	}

	n.Apply(rec, Options{})
	firstCorrections := len(rec.Audit.Corrections)
	snapshot := rec.Clone()

	n.Apply(rec, Options{})

	if len(rec.Audit.Corrections) != firstCorrections {
		t.Fatalf("second pass added corrections: %v", rec.Audit.Corrections)
	}
	if !reflect.DeepEqual(rec, snapshot) {
		t.Fatalf("second pass changed the record:\nfirst  %+v\nsecond %+v", snapshot, rec)
	}
}
