package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-md2slides/internal/config"
)

// envPrefix starts every variable md2slides reads.
const envPrefix = "MD2SLIDES_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2SLIDES_CONFIG: config file name or path
	OutputDir  string        // MD2SLIDES_OUTPUT_DIR: default output directory
	AssetPath  string        // MD2SLIDES_ASSET_PATH: custom themes and templates
	Timeout    time.Duration // MD2SLIDES_TIMEOUT: default timeout per external run
	LogLevel   string        // MD2SLIDES_LOG_LEVEL: terminal log level
	LogFile    string        // MD2SLIDES_LOG_FILE: JSON log file
}

// knownEnvVars lists valid MD2SLIDES_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SLIDES_CONFIG":     true,
	"MD2SLIDES_OUTPUT_DIR": true,
	"MD2SLIDES_ASSET_PATH": true,
	"MD2SLIDES_TIMEOUT":    true,
	"MD2SLIDES_LOG_LEVEL":  true,
	"MD2SLIDES_LOG_FILE":   true,
	// Read by doctor only.
	"MD2SLIDES_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive timeout is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2SLIDES_CONFIG"),
		OutputDir:  os.Getenv("MD2SLIDES_OUTPUT_DIR"),
		AssetPath:  os.Getenv("MD2SLIDES_ASSET_PATH"),
		LogLevel:   os.Getenv("MD2SLIDES_LOG_LEVEL"),
		LogFile:    os.Getenv("MD2SLIDES_LOG_FILE"),
	}

	if timeout := os.Getenv("MD2SLIDES_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MD2SLIDES_*
// variable, in name order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "%s unknown environment variable %s (typo?)\n", warnLabel(), name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero,
// so the order is: CLI flags > config file > env vars > defaults
// (CLI flags are applied later in builderOptions).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Timeout > 0 && cfg.Runner.Timeout == 0 {
		cfg.Runner.Timeout = config.Duration(env.Timeout)
	}
	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFile != "" && cfg.Log.File == "" {
		cfg.Log.File = env.LogFile
	}
}
