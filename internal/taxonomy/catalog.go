package taxonomy

import "strings"

// Catalog holds every canonicalization table the pipeline consumes. It is
// loaded once at startup and passed into each component; nothing mutates it
// afterwards, so it is safe to share across goroutines without locking.
type Catalog struct {
	// WatchOrg is the organization this deployment watches the market for.
	WatchOrg        string
	WatchOrgAliases []string

	ActorTypeAliases map[string]string
	CompanyAliases   map[string]string
	CompanySuffixes  []string
	CountryAliases   map[string]string
	GovEntityAliases map[string]string

	// CountryFootprint maps a canonical country name onto the operational
	// footprint region it belongs to. Countries absent from the map fall
	// into FootprintCatchAll.
	CountryFootprint map[string]string
	// FootprintBucket collapses a footprint region onto its display bucket.
	FootprintBucket map[string]string
	// FootprintRegions fixes the deterministic output order of footprint
	// lists; every valid footprint region appears exactly once.
	FootprintRegions []string
	DisplayBuckets   []string

	// RegionHints maps a footprint region onto the lowercase terms whose
	// bare substring presence in free text counts as a mention.
	RegionHints map[string][]string
	// HintCollisionRegions lists regions whose hint terms are known to
	// collide with brand or company name substrings. A hint-only match on
	// one of these is discarded unless the country mentions imply it too.
	HintCollisionRegions []string

	Topics []string

	// SourceAuthority is a fixed total order over known source
	// classifications; higher is more authoritative. Classifications absent
	// from the map rank zero.
	SourceAuthority map[string]int
	// GenericSources earn no confidence credit even though they are known.
	GenericSources []string

	KeyCustomers    []string
	PremiumEntities []string
	// PriorityTerms is the allow-list of domain keywords and canonical
	// topics whose co-occurrence with a footprint region escalates priority.
	PriorityTerms []string
}

// FootprintCatchAll collects countries outside every mapped footprint region.
const FootprintCatchAll = "Rest of World"

// LegacyEuropeRussia is a combined display label older records carry. It is
// rewritten to the generic Europe bucket unless Russia is explicitly
// mentioned.
const LegacyEuropeRussia = "Europe including Russia"

// BucketEurope is the generic Europe display bucket.
const BucketEurope = "Europe"

// IsFootprintRegion reports whether name is a valid footprint region.
func (c *Catalog) IsFootprintRegion(name string) bool {
	for _, region := range c.FootprintRegions {
		if region == name {
			return true
		}
	}
	return false
}

// IsTopic reports whether name is a canonical topic.
func (c *Catalog) IsTopic(name string) bool {
	for _, topic := range c.Topics {
		if topic == name {
			return true
		}
	}
	return false
}

// AuthorityOf returns the publisher-authority rank of a source
// classification. Unknown classifications rank zero.
func (c *Catalog) AuthorityOf(classification string) int {
	return c.SourceAuthority[strings.ToLower(strings.TrimSpace(classification))]
}

// IsKnownSource reports whether a classification is known and non-generic.
func (c *Catalog) IsKnownSource(classification string) bool {
	key := strings.ToLower(strings.TrimSpace(classification))
	if _, ok := c.SourceAuthority[key]; !ok {
		return false
	}
	for _, generic := range c.GenericSources {
		if generic == key {
			return false
		}
	}
	return true
}

// IsKeyCustomer reports whether a canonical company name is a key customer.
func (c *Catalog) IsKeyCustomer(company string) bool {
	return containsFold(c.KeyCustomers, company)
}

// IsPremiumEntity reports whether a canonical company name is on the
// premium-entity allow-list.
func (c *Catalog) IsPremiumEntity(company string) bool {
	return containsFold(c.PremiumEntities, company)
}

// IsCollisionProne reports whether a footprint region's text hints are known
// to collide with brand name substrings.
func (c *Catalog) IsCollisionProne(region string) bool {
	for _, candidate := range c.HintCollisionRegions {
		if candidate == region {
			return true
		}
	}
	return false
}

// NamesWatchOrg reports whether the value names the watching organization.
func (c *Catalog) NamesWatchOrg(value string) bool {
	lowered := strings.ToLower(strings.TrimSpace(value))
	if lowered == "" {
		return false
	}
	if lowered == strings.ToLower(c.WatchOrg) {
		return true
	}
	for _, alias := range c.WatchOrgAliases {
		if strings.Contains(lowered, alias) {
			return true
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, value) {
			return true
		}
	}
	return false
}
