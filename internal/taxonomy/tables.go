package taxonomy

// Default returns the built-in canonicalization catalog. The tables are data,
// not logic: extending a map or list here changes pipeline behavior without
// touching any component.
func Default() *Catalog {
	return &Catalog{
		WatchOrg:        "NovaTread",
		WatchOrgAliases: []string{"novatread", "nova tread"},

		ActorTypeAliases: map[string]string{
			"oem":                  "oem",
			"automaker":            "oem",
			"carmaker":             "oem",
			"car maker":            "oem",
			"vehicle manufacturer": "oem",
			"supplier":             "supplier",
			"tier 1":               "supplier",
			"tier-1":               "supplier",
			"tier 1 supplier":      "supplier",
			"tier 2":               "supplier",
			"component maker":      "supplier",
			"technology":           "technology",
			"tech":                 "technology",
			"tech company":         "technology",
			"startup":              "technology",
			"software":             "technology",
			"industry":             "industry",
			"association":          "industry",
			"industry body":        "industry",
			"trade group":          "industry",
			"other":                "other",
		},

		CompanyAliases: map[string]string{
			"vw":               "Volkswagen",
			"volkswagen group": "Volkswagen",
			"mercedes":         "Mercedes-Benz",
			"mercedes benz":    "Mercedes-Benz",
			"daimler":          "Mercedes-Benz",
			"gm":               "General Motors",
			"general motors company": "General Motors",
			"byd auto":         "BYD",
			"saic motor":       "SAIC",
			"great wall":       "Great Wall Motor",
			"gwm":              "Great Wall Motor",
			"tata":             "Tata Motors",
			"hyundai motor":    "Hyundai",
			"hyundai motor company": "Hyundai",
			"fca":              "Stellantis",
			"psa":              "Stellantis",
			"psa group":        "Stellantis",
			"renault group":    "Renault",
			"toyota motor":     "Toyota",
			"novatread group":  "NovaTread",
			"nova tread":       "NovaTread",
		},

		CompanySuffixes: []string{
			"ag", "gmbh", "se", "sa", "s.a.", "nv", "n.v.", "spa", "s.p.a.",
			"plc", "inc", "inc.", "incorporated", "ltd", "ltd.", "limited",
			"llc", "co", "co.", "corp", "corp.", "corporation", "holdings",
			"co ltd", "co., ltd.",
		},

		CountryAliases: map[string]string{
			"usa":                          "United States",
			"us":                           "United States",
			"u.s.":                         "United States",
			"united states of america":     "United States",
			"uk":                           "United Kingdom",
			"great britain":                "United Kingdom",
			"britain":                      "United Kingdom",
			"prc":                          "China",
			"people's republic of china":   "China",
			"mainland china":               "China",
			"korea":                        "South Korea",
			"republic of korea":            "South Korea",
			"uae":                          "United Arab Emirates",
			"czechia":                      "Czech Republic",
			"holland":                      "Netherlands",
			"deutschland":                  "Germany",
			"russian federation":           "Russia",
		},

		GovEntityAliases: map[string]string{
			"european commission":  "European Commission",
			"eu commission":        "European Commission",
			"nhtsa":                "NHTSA",
			"national highway traffic safety administration": "NHTSA",
			"epa":                          "EPA",
			"environmental protection agency": "EPA",
			"miit":                         "MIIT",
			"ministry of industry and information technology": "MIIT",
			"kba":                          "KBA",
			"kraftfahrt-bundesamt":         "KBA",
		},

		CountryFootprint: map[string]string{
			"Germany":              "Germany",
			"France":               "France",
			"United Kingdom":       "United Kingdom",
			"Spain":                "Spain",
			"Italy":                "Italy",
			"Poland":               "Poland",
			"Russia":               "Russia",
			"Austria":              "Rest of Europe",
			"Belgium":              "Rest of Europe",
			"Netherlands":          "Rest of Europe",
			"Czech Republic":       "Rest of Europe",
			"Sweden":               "Rest of Europe",
			"Portugal":             "Rest of Europe",
			"Hungary":              "Rest of Europe",
			"Romania":              "Rest of Europe",
			"Slovakia":             "Rest of Europe",
			"Turkey":               "Rest of Europe",
			"United States":        "United States",
			"Mexico":               "Mexico",
			"Canada":               "Rest of North America",
			"Brazil":               "Brazil",
			"Argentina":            "Rest of South America",
			"Chile":                "Rest of South America",
			"Colombia":             "Rest of South America",
			"China":                "China",
			"India":                "India",
			"Japan":                "Japan",
			"South Korea":          "South Korea",
			"Thailand":             "Thailand",
			"Vietnam":              "Rest of Asia-Pacific",
			"Indonesia":            "Rest of Asia-Pacific",
			"Malaysia":             "Rest of Asia-Pacific",
			"Australia":            "Rest of Asia-Pacific",
			"Taiwan":               "Rest of Asia-Pacific",
			"Singapore":            "Rest of Asia-Pacific",
			"Saudi Arabia":         "Middle East & Africa",
			"United Arab Emirates": "Middle East & Africa",
			"South Africa":         "Middle East & Africa",
			"Egypt":                "Middle East & Africa",
			"Israel":               "Middle East & Africa",
			"Morocco":              "Middle East & Africa",
		},

		FootprintBucket: map[string]string{
			"Germany":               BucketEurope,
			"France":                BucketEurope,
			"United Kingdom":        BucketEurope,
			"Spain":                 BucketEurope,
			"Italy":                 BucketEurope,
			"Poland":                BucketEurope,
			"Rest of Europe":        BucketEurope,
			"Russia":                LegacyEuropeRussia,
			"United States":         "North America",
			"Mexico":                "North America",
			"Rest of North America": "North America",
			"Brazil":                "South America",
			"Rest of South America": "South America",
			"China":                 "Asia-Pacific",
			"India":                 "Asia-Pacific",
			"Japan":                 "Asia-Pacific",
			"South Korea":           "Asia-Pacific",
			"Thailand":              "Asia-Pacific",
			"Rest of Asia-Pacific":  "Asia-Pacific",
			"Middle East & Africa":  "Middle East & Africa",
			FootprintCatchAll:       "Global",
		},

		FootprintRegions: []string{
			"Germany", "France", "United Kingdom", "Spain", "Italy", "Poland",
			"Russia", "Rest of Europe",
			"United States", "Mexico", "Rest of North America",
			"Brazil", "Rest of South America",
			"China", "India", "Japan", "South Korea", "Thailand",
			"Rest of Asia-Pacific",
			"Middle East & Africa",
			FootprintCatchAll,
		},

		DisplayBuckets: []string{
			BucketEurope, LegacyEuropeRussia, "North America", "South America",
			"Asia-Pacific", "Middle East & Africa", "Global",
		},

		RegionHints: map[string][]string{
			"Germany":               {"germany", "german"},
			"France":                {"france", "french"},
			"United Kingdom":        {"united kingdom", "british"},
			"Spain":                 {"spain", "spanish"},
			"Italy":                 {"italy", "italian"},
			"Poland":                {"poland", "polish"},
			"Russia":                {"russia", "russian"},
			"Rest of Europe":        {"europe", "european"},
			"United States":         {"united states", "u.s."},
			"Mexico":                {"mexico", "mexican"},
			"Rest of North America": {"north america"},
			"Brazil":                {"brazil", "brazilian"},
			"Rest of South America": {"south america", "latin america"},
			"China":                 {"china", "chinese"},
			"India":                 {"india", "indian"},
			"Japan":                 {"japan", "japanese"},
			"South Korea":           {"south korea", "korean"},
			"Thailand":              {"thailand"},
			"Rest of Asia-Pacific":  {"asia-pacific", "asean", "southeast asia"},
			"Middle East & Africa":  {"middle east", "africa", "african"},
		},

		// "china"/"chinese" and "india"/"indian" routinely surface inside
		// brand tokens ("Chinese-owned brands", "Indian Motorcycle"); a
		// hint-only match on these regions cannot be trusted.
		HintCollisionRegions: []string{"China", "India"},

		Topics: []string{
			"EV Transition",
			"Capacity & Plants",
			"Supply Chain",
			"Regulation & Tariffs",
			"M&A & Partnerships",
			"Raw Materials",
			"Technology & Software",
			"Market Demand",
			"Labor & Workforce",
			"Sustainability",
		},

		SourceAuthority: map[string]int{
			"regulatory_filing": 7,
			"newswire":          6,
			"trade_press":       5,
			"national_media":    4,
			"company_statement": 3,
			"aggregator":        2,
			"blog":              1,
		},
		GenericSources: []string{"aggregator", "blog"},

		KeyCustomers: []string{
			"Volkswagen", "Toyota", "Stellantis", "BMW", "Mercedes-Benz",
			"Ford", "General Motors", "Hyundai", "Renault", "Tata Motors",
		},

		PremiumEntities: []string{
			"BMW", "Mercedes-Benz", "Audi", "Porsche", "Tesla", "Lexus",
		},

		PriorityTerms: []string{
			"tire", "tyre", "oe fitment", "original equipment",
			"plant closure", "capacity expansion", "gigafactory",
			"battery plant", "localization", "tariff", "recall",
			"ev transition", "capacity & plants", "regulation & tariffs",
		},
	}
}
