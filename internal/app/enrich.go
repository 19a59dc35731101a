package app

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"horse.fit/intel-pipeline/internal/cli"
	"horse.fit/intel-pipeline/internal/config"
	"horse.fit/intel-pipeline/internal/enrich"
	"horse.fit/intel-pipeline/internal/logging"
	"horse.fit/intel-pipeline/internal/record"
	"horse.fit/intel-pipeline/internal/taxonomy"
)

// runEnrich enriches exactly one record and prints the enriched JSON to
// stdout. It never touches the store, so no duplicate resolution happens.
func runEnrich(args []string) int {
	fs := flag.NewFlagSet("enrich", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	file := fs.String("file", "-", "Record JSON file, or - for stdin")
	dateHint := fs.String("date-hint", "", "Publish date hint used only when the record has none")
	sourceURL := fs.String("source-url", "", "Source URL override, always wins over the extracted URL")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	raw, err := readRecordFile(strings.TrimSpace(*file))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read record: %v\n", err)
		return 1
	}

	var rec record.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse record JSON: %v\n", err)
		return 1
	}

	catalog := taxonomy.Default()
	rules, err := loadThemeRules(catalog, cfg.ThemeRulesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load theme rules: %v\n", err)
		return 1
	}

	pipeline := enrich.NewPipeline(catalog, rules, logger)
	pipeline.Enrich(&rec, enrich.Options{
		DateHint:          strings.TrimSpace(*dateHint),
		SourceURLOverride: strings.TrimSpace(*sourceURL),
	})

	encoded, err := json.MarshalIndent(&rec, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode enriched record: %v\n", err)
		return 1
	}

	fmt.Println(string(encoded))
	return 0
}

func readRecordFile(path string) ([]byte, error) {
	if path == "" || path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
