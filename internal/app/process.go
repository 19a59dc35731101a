package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"horse.fit/intel-pipeline/internal/cli"
	"horse.fit/intel-pipeline/internal/config"
	"horse.fit/intel-pipeline/internal/ingest"
	"horse.fit/intel-pipeline/internal/logging"
	"horse.fit/intel-pipeline/internal/record"
)

type processResult struct {
	Scanned    int
	Stored     int
	Blocked    int
	Duplicates int
	Failed     int
}

// runProcess enriches a directory of raw record files and resolves
// duplicates across the whole batch. Blocked submissions are dropped;
// near-duplicate losers are kept with their canonical reference.
func runProcess(args []string) int {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	dir := fs.String("dir", "testdata/records", "Directory containing raw record .json files")
	recursive := fs.Bool("recursive", true, "Recursively scan subdirectories")
	out := fs.String("out", "", "Write enriched records as a JSON array to this file (default stdout)")

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

	st, svc, err := buildIngest(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("process failed to build pipeline")
		fmt.Fprintf(os.Stderr, "Failed to build pipeline: %v\n", err)
		return 1
	}

	files, err := collectJSONFiles(strings.TrimSpace(*dir), *recursive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Process setup failed: %v\n", err)
		return 1
	}

	ctx := context.Background()
	result := processResult{}
	for _, path := range files {
		result.Scanned++

		raw, err := os.ReadFile(path)
		if err != nil {
			result.Failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: read failed: %v\n", path, err)
			continue
		}

		var rec record.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			result.Failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: parse failed: %v\n", path, err)
			continue
		}

		res, err := svc.IngestOne(ctx, ingest.Request{Record: rec})
		if err != nil {
			result.Failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", path, err)
			continue
		}

		switch {
		case res.Blocked:
			result.Blocked++
		case res.Duplicate:
			result.Duplicates++
			result.Stored++
		default:
			result.Stored++
		}
	}

	if err := writeProcessed(strings.TrimSpace(*out), st.Snapshot()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}

	fmt.Printf(
		"process scanned=%d stored=%d blocked=%d duplicates=%d failed=%d dir=%s\n",
		result.Scanned,
		result.Stored,
		result.Blocked,
		result.Duplicates,
		result.Failed,
		strings.TrimSpace(*dir),
	)

	if result.Scanned == 0 {
		fmt.Fprintf(os.Stderr, "Process failed: no .json files found under %s\n", strings.TrimSpace(*dir))
		return 1
	}
	if result.Failed > 0 {
		return 1
	}
	return 0
}

func writeProcessed(path string, records []*record.Record) error {
	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	if path == "" {
		fmt.Println(string(encoded))
		return nil
	}

	if err := os.WriteFile(path, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
