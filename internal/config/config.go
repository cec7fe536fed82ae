package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-md2slides"

// Log levels accepted in log.level.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// MaxPathLength bounds every path field.
const MaxPathLength = 4096

// Config holds the command-line tool settings. Deck settings live in the
// document's front matter, not here.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	Runner RunnerConfig `yaml:"runner"`
	Export ExportConfig `yaml:"export"`
	Watch  WatchConfig  `yaml:"watch"`
	Assets AssetsConfig `yaml:"assets"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = document's output-dir
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (empty = info)
	File  string `yaml:"file"`  // JSON log file (empty = stderr only)
}

// RunnerConfig defines defaults for plugins that run external programs.
type RunnerConfig struct {
	Timeout Duration `yaml:"timeout"` // Empty = plugin default
}

// ExportConfig defines PDF export options.
type ExportConfig struct {
	Timeout Duration `yaml:"timeout"` // Empty = exporter default
}

// WatchConfig defines watch mode options.
type WatchConfig struct {
	Debounce Duration `yaml:"debounce"` // Empty = pipeline default
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Duration is a time.Duration read from a Go duration string ("5s", "1m30s").
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(data []byte) error {
	var s string
	if err := yamlutil.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Validate checks every field.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Output),
		validation.Field(&c.Log),
		validation.Field(&c.Runner),
		validation.Field(&c.Export),
		validation.Field(&c.Watch),
		validation.Field(&c.Assets),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate implements validation.Validatable.
func (o OutputConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.DefaultDir, validation.Length(0, MaxPathLength)),
	)
}

// Validate implements validation.Validatable.
func (l LogConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In(LevelDebug, LevelInfo, LevelWarn, LevelError)),
		validation.Field(&l.File, validation.Length(0, MaxPathLength)),
	)
}

// Validate implements validation.Validatable.
func (r RunnerConfig) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Timeout, validation.Min(Duration(0))),
	)
}

// Validate implements validation.Validatable.
func (e ExportConfig) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Timeout, validation.Min(Duration(0))),
	)
}

// Validate implements validation.Validatable.
func (w WatchConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Debounce, validation.Min(Duration(0))),
	)
}

// Validate implements validation.Validatable.
func (a AssetsConfig) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.BasePath, validation.Length(0, MaxPathLength)),
	)
}

// DefaultConfig returns a neutral configuration: every field empty, so the
// pipeline defaults apply.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse decodes and validates a config document. Unknown fields are errors.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order: the current
// directory, then <user config dir>/go-md2slides/, each with .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first of SearchPaths(name) that exists.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
