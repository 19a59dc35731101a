package themes

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"gopkg.in/yaml.v3"

	"horse.fit/intel-pipeline/internal/taxonomy"
)

//go:embed rules.yaml
var builtinRulesYAML []byte

// Rule is one declarative macro-theme definition. Adding a rule is a data
// change: the detector interprets whatever the file declares.
type Rule struct {
	Name string `yaml:"name"`
	// MinGroups is how many signal categories need at least one hit before
	// the theme fires. Defaults to 2.
	MinGroups int      `yaml:"min_groups"`
	Companies []string `yaml:"companies"`
	Keywords  []string `yaml:"keywords"`
	Topics    []string `yaml:"topics"`
	Regions   []string `yaml:"regions"`
	// AntiKeywords suppress firing unless the matched-group count strictly
	// exceeds AntiOverride (default: MinGroups).
	AntiKeywords []string `yaml:"anti_keywords"`
	AntiOverride int      `yaml:"anti_override"`
	// PremiumGate requires at least one matched company to be on the
	// premium-entity allow-list.
	PremiumGate bool `yaml:"premium_gate"`
	// RequiredRegions veto firing outright when the record's footprint does
	// not intersect them.
	RequiredRegions []string `yaml:"required_regions"`
	Rollup          string   `yaml:"rollup"`
}

type compiledRule struct {
	Rule
	companySet  map[string]struct{}
	keywordHits *ahocorasick.Matcher
	antiHits    *ahocorasick.Matcher
}

// RuleSet holds the compiled macro-theme rules in file order.
type RuleSet struct {
	rules []compiledRule
}

// Len reports the number of loaded rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Names returns the rule names in file order.
func (rs *RuleSet) Names() []string {
	names := make([]string, 0, len(rs.rules))
	for _, rule := range rs.rules {
		names = append(names, rule.Name)
	}
	return names
}

// Load compiles the embedded rule file. A rule referencing an unknown topic
// or region is a configuration error and fails here, before any record is
// processed.
func Load(catalog *taxonomy.Catalog) (*RuleSet, error) {
	return parse(catalog, builtinRulesYAML, "embedded rules")
}

// LoadFile compiles rules from an external YAML file, replacing the built-in
// set.
func LoadFile(catalog *taxonomy.Catalog, path string) (*RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme rules %s: %w", path, err)
	}
	return parse(catalog, raw, path)
}

func parse(catalog *taxonomy.Catalog, raw []byte, origin string) (*RuleSet, error) {
	var rules []Rule
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("parse theme rules from %s: %w", origin, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("theme rules from %s are empty", origin)
	}

	compiled := make([]compiledRule, 0, len(rules))
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if err := validateRule(catalog, rule); err != nil {
			return nil, fmt.Errorf("theme rule %d (%q): %w", i, rule.Name, err)
		}
		if _, dup := seen[rule.Name]; dup {
			return nil, fmt.Errorf("theme rule %d: duplicate name %q", i, rule.Name)
		}
		seen[rule.Name] = struct{}{}

		if rule.MinGroups == 0 {
			rule.MinGroups = 2
		}
		if rule.AntiOverride == 0 {
			rule.AntiOverride = rule.MinGroups
		}

		entry := compiledRule{
			Rule:       rule,
			companySet: lowerSet(rule.Companies),
		}
		if len(rule.Keywords) > 0 {
			entry.keywordHits = ahocorasick.NewStringMatcher(lowerAll(rule.Keywords))
		}
		if len(rule.AntiKeywords) > 0 {
			entry.antiHits = ahocorasick.NewStringMatcher(lowerAll(rule.AntiKeywords))
		}
		compiled = append(compiled, entry)
	}

	return &RuleSet{rules: compiled}, nil
}

func validateRule(catalog *taxonomy.Catalog, rule Rule) error {
	if strings.TrimSpace(rule.Name) == "" {
		return fmt.Errorf("name must not be empty")
	}
	if rule.MinGroups < 0 || rule.MinGroups > 4 {
		return fmt.Errorf("min_groups must be between 1 and 4")
	}
	if rule.AntiOverride < 0 {
		return fmt.Errorf("anti_override must be >= 0")
	}
	if len(rule.Companies) == 0 && len(rule.Keywords) == 0 && len(rule.Topics) == 0 && len(rule.Regions) == 0 {
		return fmt.Errorf("at least one signal category must be configured")
	}
	if rule.PremiumGate && len(rule.Companies) == 0 {
		return fmt.Errorf("premium_gate requires a companies signal set")
	}
	for _, topic := range rule.Topics {
		if !catalog.IsTopic(topic) {
			return fmt.Errorf("unknown topic %q", topic)
		}
	}
	for _, region := range rule.Regions {
		if !catalog.IsFootprintRegion(region) {
			return fmt.Errorf("unknown region %q", region)
		}
	}
	for _, region := range rule.RequiredRegions {
		if !catalog.IsFootprintRegion(region) {
			return fmt.Errorf("unknown required region %q", region)
		}
	}
	return nil
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, value := range values {
		lowered[i] = strings.ToLower(value)
	}
	return lowered
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[strings.ToLower(value)] = struct{}{}
	}
	return set
}
