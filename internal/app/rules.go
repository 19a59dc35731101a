package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"horse.fit/intel-pipeline/internal/taxonomy"
)

// runRules lints a theme rule file against the taxonomy. A bad rule file is
// a configuration error, so it exits 1 before any record is processed.
func runRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	file := fs.String("file", "", "Theme rule YAML file (default: embedded rule set)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	catalog := taxonomy.Default()
	rules, err := loadThemeRules(catalog, strings.TrimSpace(*file))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Rule lint failed: %v\n", err)
		return 1
	}

	source := strings.TrimSpace(*file)
	if source == "" {
		source = "embedded"
	}

	fmt.Printf("rules ok count=%d source=%s\n", rules.Len(), source)
	for _, name := range rules.Names() {
		fmt.Printf("  %s\n", name)
	}
	return 0
}
