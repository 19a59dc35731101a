package priority

import (
	"reflect"
	"testing"

	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

func TestBoostBaselineNormalization(t *testing.T) {
	t.Parallel()

	b := New(taxonomy.Default())

	cases := []struct {
		raw  string
		want string
	}{
		{"", record.LevelLow},
		{"low", record.LevelLow},
		{"MEDIUM", record.LevelMedium},
		{"High", record.LevelHigh},
		{"urgent", record.LevelLow},
	}
	for _, tc := range cases {
		rec := &record.Record{Title: "x", Priority: tc.raw}
		b.Boost(rec)
		if rec.Priority != tc.want {
			t.Fatalf("baseline %q became %q, want %q", tc.raw, rec.Priority, tc.want)
		}
	}
}

func TestBoostWatchOrgNamed(t *testing.T) {
	t.Parallel()

	b := New(taxonomy.Default())

	byCompany := &record.Record{Title: "x", Companies: []string{"NovaTread"}}
	b.Boost(byCompany)
	if byCompany.Priority != record.LevelHigh {
		t.Fatalf("priority = %q, want High", byCompany.Priority)
	}
	if !reflect.DeepEqual(byCompany.Audit.PriorityReasons, []string{ReasonWatchOrgNamed}) {
		t.Fatalf("reasons = %v", byCompany.Audit.PriorityReasons)
	}

	byTitle := &record.Record{Title: "Nova Tread wins OE fitment deal"}
	b.Boost(byTitle)
	if byTitle.Priority != record.LevelHigh {
		t.Fatalf("title mention did not escalate, priority = %q", byTitle.Priority)
	}
}

func TestBoostFootprintDomainTerm(t *testing.T) {
	t.Parallel()

	b := New(taxonomy.Default())

	rec := &record.Record{
		Title:            "x",
		Keywords:         []string{"Tariff"},
		RegionsFootprint: []string{"United States"},
	}
	b.Boost(rec)
	if rec.Priority != record.LevelHigh {
		t.Fatalf("priority = %q, want High", rec.Priority)
	}
	if !reflect.DeepEqual(rec.Audit.PriorityReasons, []string{ReasonFootprintDomainTerm}) {
		t.Fatalf("reasons = %v", rec.Audit.PriorityReasons)
	}

	// The same term without footprint relevance stays at baseline.
	noFootprint := &record.Record{Title: "x", Keywords: []string{"tariff"}}
	b.Boost(noFootprint)
	if noFootprint.Priority != record.LevelLow {
		t.Fatalf("escalated without footprint, priority = %q", noFootprint.Priority)
	}
}

func TestBoostFootprintKeyCustomer(t *testing.T) {
	t.Parallel()

	b := New(taxonomy.Default())
	rec := &record.Record{
		Title:            "x",
		Companies:        []string{"Toyota"},
		RegionsFootprint: []string{"Japan"},
	}

	b.Boost(rec)

	if rec.Priority != record.LevelHigh {
		t.Fatalf("priority = %q, want High", rec.Priority)
	}
	if !reflect.DeepEqual(rec.Audit.PriorityReasons, []string{ReasonFootprintKeyCustomer}) {
		t.Fatalf("reasons = %v", rec.Audit.PriorityReasons)
	}
}

func TestBoostNeverDowngrades(t *testing.T) {
	t.Parallel()

	b := New(taxonomy.Default())
	rec := &record.Record{Title: "routine market note", Priority: record.LevelHigh}

	b.Boost(rec)

	if rec.Priority != record.LevelHigh {
		t.Fatalf("priority downgraded to %q", rec.Priority)
	}
	if len(rec.Audit.PriorityReasons) != 0 {
		t.Fatalf("no rule fired yet reasons = %v", rec.Audit.PriorityReasons)
	}
}

func TestBoostReasonsAppendOnce(t *testing.T) {
	t.Parallel()

	b := New(taxonomy.Default())
	rec := &record.Record{
		Title:            "x",
		Companies:        []string{"NovaTread", "Toyota"},
		Keywords:         []string{"capacity expansion"},
		RegionsFootprint: []string{"Germany"},
	}

	b.Boost(rec)
	b.Boost(rec)

	want := []string{ReasonWatchOrgNamed, ReasonFootprintDomainTerm, ReasonFootprintKeyCustomer}
	if !reflect.DeepEqual(rec.Audit.PriorityReasons, want) {
		t.Fatalf("reasons = %v, want %v", rec.Audit.PriorityReasons, want)
	}
}
