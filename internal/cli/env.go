package cli

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that force a specific .env file, ahead of the --env
// flag. INTEL_PIPELINE_ENV_FILE is the service-specific one; HORSE_ENV_FILE
// is shared across deployments on the same host.
var envFileOverrides = []string{"INTEL_PIPELINE_ENV_FILE", "HORSE_ENV_FILE"}

// EnvLoader resolves which .env file a subcommand runs with. Every
// subcommand registers one so `--env` behaves the same everywhere.
type EnvLoader struct {
	value       *string
	defaultPath string
}

// AddEnvFlag registers the --env flag on fs and returns the loader bound to
// it. Empty defaults fall back to ".env" in the working directory.
func AddEnvFlag(fs *flag.FlagSet, defaultPath, description string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	if defaultPath == "" {
		defaultPath = ".env"
	}
	if description == "" {
		description = "Path to the .env file"
	}
	return &EnvLoader{
		value:       fs.String("env", defaultPath, description),
		defaultPath: defaultPath,
	}
}

// Load applies the first .env file that resolves, in order: override
// environment variables, the --env flag value, the flag value's basename in
// the working directory, then the default path. Values in the file override
// anything already in the environment. Returns the path that loaded.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	log.SetOutput(os.Stderr)

	for _, envVar := range envFileOverrides {
		custom := strings.TrimSpace(os.Getenv(envVar))
		if custom == "" {
			continue
		}
		if err := godotenv.Overload(custom); err != nil {
			log.Printf("Warning: failed to load %s=%s", envVar, custom)
			continue
		}
		log.Printf("Loaded environment from %s: %s", envVar, custom)
		return custom, nil
	}

	requested := l.defaultPath
	if l.value != nil && strings.TrimSpace(*l.value) != "" {
		requested = strings.TrimSpace(*l.value)
	}

	candidates := []string{requested}
	if base := filepath.Base(requested); base != "" && base != requested {
		candidates = append(candidates, base)
	}
	if requested != l.defaultPath {
		candidates = append(candidates, l.defaultPath)
	}

	for _, path := range candidates {
		if err := godotenv.Overload(path); err == nil {
			log.Printf("Loaded environment from: %s", path)
			return path, nil
		}
	}
	return "", fmt.Errorf("failed to load env file from %s", requested)
}
