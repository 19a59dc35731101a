package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/intel-pipeline/internal/config"
	"horse.fit/intel-pipeline/internal/dedupe"
	"horse.fit/intel-pipeline/internal/enrich"
	"horse.fit/intel-pipeline/internal/ingest"
	"horse.fit/intel-pipeline/internal/store"
	"horse.fit/intel-pipeline/internal/taxonomy"
	"horse.fit/intel-pipeline/internal/themes"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "enrich":
		return runEnrich(args[1:])
	case "process", "run-once":
		return runProcess(args[1:])
	case "validate":
		return runValidate(args[1:])
	case "rules":
		return runRules(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "intel-pipeline CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  intel-pipeline <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  enrich    Enrich a single record JSON file and print the result")
	fmt.Fprintln(os.Stderr, "  process   Enrich and duplicate-resolve a directory of record files")
	fmt.Fprintln(os.Stderr, "  run-once  Alias for process")
	fmt.Fprintln(os.Stderr, "  validate  Validate enriched record JSON files against the schema")
	fmt.Fprintln(os.Stderr, "  rules     Lint the macro theme rule set")
	fmt.Fprintln(os.Stderr, "  serve     Start the Echo API server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"intel-pipeline <command> -h\" for command-specific flags.")
}

// buildIngest wires the catalog, theme rules, pipeline, resolver and store
// into one ingest service. Every command that enriches records goes through
// here so they all share the same rule set resolution.
func buildIngest(cfg *config.Config, logger zerolog.Logger) (*store.Memory, *ingest.Service, error) {
	catalog := taxonomy.Default()

	rules, err := loadThemeRules(catalog, cfg.ThemeRulesFile)
	if err != nil {
		return nil, nil, err
	}

	pipeline := enrich.NewPipeline(catalog, rules, logger)
	resolver := dedupe.NewResolver(catalog)
	st := store.NewMemory()
	svc := ingest.NewService(st, pipeline, resolver, logger)
	return st, svc, nil
}

func loadThemeRules(catalog *taxonomy.Catalog, path string) (*themes.RuleSet, error) {
	if strings.TrimSpace(path) == "" {
		rules, err := themes.Load(catalog)
		if err != nil {
			return nil, fmt.Errorf("load built-in theme rules: %w", err)
		}
		return rules, nil
	}

	rules, err := themes.LoadFile(catalog, strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("load theme rules from %s: %w", path, err)
	}
	return rules, nil
}
