package dedupe

import (
	"strings"
	"time"
	"unicode"

	"horse.fit/intel-pipeline/internal/normalize"
	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

// SimilarityThreshold is the trigram-Jaccard ratio at or above which two
// titles describe the same story.
const SimilarityThreshold = 0.88

// Decision is the storage instruction for an incoming record.
type Decision struct {
	// Blocked means an existing record carries the exact same normalized
	// title; the submission must not be persisted.
	Blocked   bool
	BlockedBy string

	// CanonicalID is set when the incoming record joined a fuzzy duplicate
	// group; it names the one record that represents the story.
	CanonicalID string
	// DuplicateIDs lists every record marked duplicate in this resolution,
	// possibly including the incoming record itself.
	DuplicateIDs []string
}

// Persist reports whether the incoming record should be stored at all.
func (d Decision) Persist() bool { return !d.Blocked }

// Resolver runs the two-stage duplicate pipeline: exact-title blocking, then
// fuzzy-match grouping with canonical selection over a strict total order.
type Resolver struct {
	catalog *taxonomy.Catalog
}

func NewResolver(catalog *taxonomy.Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve compares the incoming record against the existing set. The caller
// must hold the set stable for the duration of the call and apply the
// decision before admitting another record; two submissions racing through
// here could otherwise each see the other as unique.
func (r *Resolver) Resolve(incoming *record.Record, existing []*record.Record) Decision {
	title := NormalizeTitle(incoming.Title)

	for _, candidate := range existing {
		if NormalizeTitle(candidate.Title) == title {
			return Decision{Blocked: true, BlockedBy: candidate.ID}
		}
	}

	incomingTrigrams := trigramSet(title)
	group := []*record.Record{incoming}
	for _, candidate := range existing {
		if candidate.IsDuplicate {
			continue
		}
		if trigramJaccard(incomingTrigrams, trigramSet(NormalizeTitle(candidate.Title))) >= SimilarityThreshold {
			group = append(group, candidate)
		}
	}
	if len(group) == 1 {
		return Decision{}
	}

	canonical := group[0]
	for _, candidate := range group[1:] {
		if moreCanonical(r.catalog, candidate, canonical) {
			canonical = candidate
		}
	}

	decision := Decision{CanonicalID: canonical.ID}
	demoted := make(map[string]struct{}, len(group)-1)
	for _, member := range group {
		if member == canonical {
			member.IsDuplicate = false
			member.DuplicateOf = ""
			continue
		}
		member.IsDuplicate = true
		member.DuplicateOf = canonical.ID
		demoted[member.ID] = struct{}{}
		decision.DuplicateIDs = append(decision.DuplicateIDs, member.ID)
	}

	// A demoted member may have been the canonical of an earlier group, so
	// its old losers still point at it. Re-point them; every duplicate link
	// must name the current canonical directly, never a chain.
	for _, candidate := range existing {
		if !candidate.IsDuplicate {
			continue
		}
		if _, ok := demoted[candidate.DuplicateOf]; ok {
			candidate.DuplicateOf = canonical.ID
		}
	}
	return decision
}

// moreCanonical is the strict total order used to pick the canonical record
// of a duplicate group. Evaluated in fixed sequence: publisher authority,
// confidence ordinal, completeness count, most-recent publish date,
// most-recent creation time, and finally the record ID. The ID step makes
// the order total; a full tie would mean two records share an ID, which is a
// defect upstream of this code.
func moreCanonical(catalog *taxonomy.Catalog, a, b *record.Record) bool {
	if av, bv := catalog.AuthorityOf(a.SourceClassification), catalog.AuthorityOf(b.SourceClassification); av != bv {
		return av > bv
	}
	if av, bv := record.LevelOrdinal(a.Confidence), record.LevelOrdinal(b.Confidence); av != bv {
		return av > bv
	}
	if av, bv := completeness(a), completeness(b); av != bv {
		return av > bv
	}
	if av, bv := publishTime(a), publishTime(b); !av.Equal(bv) {
		return av.After(bv)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

// completeness counts the presence signals that make a record the better
// keeper: publish date, URL, non-empty footprint list, three or more
// evidence bullets.
func completeness(rec *record.Record) int {
	count := 0
	if rec.PublishDate != "" {
		count++
	}
	if rec.SourceURL != "" {
		count++
	}
	if len(rec.RegionsFootprint) > 0 {
		count++
	}
	if len(rec.EvidenceBullets) >= 3 {
		count++
	}
	return count
}

func publishTime(rec *record.Record) time.Time {
	ts, err := time.Parse(normalize.ISODate, rec.PublishDate)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// NormalizeTitle lowercases a title, strips punctuation and collapses
// whitespace, yielding the stage-1 blocking key.
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func trigramSet(text string) map[string]struct{} {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) < 3 {
		return map[string]struct{}{string(runes): {}}
	}
	set := make(map[string]struct{}, len(runes)-2)
	for i := 0; i <= len(runes)-3; i++ {
		set[string(runes[i:i+3])] = struct{}{}
	}
	return set
}

func trigramJaccard(left, right map[string]struct{}) float64 {
	if len(left) == 0 || len(right) == 0 {
		return 0
	}
	intersection := 0
	for gram := range left {
		if _, ok := right[gram]; ok {
			intersection++
		}
	}
	if intersection == 0 {
		return 0
	}
	union := len(left) + len(right) - intersection
	return float64(intersection) / float64(union)
}
