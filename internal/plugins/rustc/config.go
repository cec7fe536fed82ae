package rustc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/alnah/go-md2slides/internal/deck"
)

// ErrInvalidConfig indicates a rustc metadata key with an unusable value.
var ErrInvalidConfig = errors.New("invalid rustc configuration")

// Metadata keys read by the plugin.
const (
	KeyTimeout   = "rustc-timeout"
	KeyCacheSalt = "rustc-cache-salt"
	KeyAllows    = "rustc-allows"
	KeyEdition   = "rustc-edition"
	KeyDeps      = "cargo-deps"
)

// Defaults applied when the metadata is silent.
const (
	DefaultTimeout = 5 * time.Second
	DefaultEdition = "2021"
)

// DefaultAllows are the lints silenced in slide code, which is usually
// incomplete on purpose.
var DefaultAllows = []string{
	"unused_variables",
	"unused_assignments",
	"unused_mut",
	"unused_attributes",
	"dead_code",
}

// Config is the typed view of the rustc metadata keys.
type Config struct {
	Timeout time.Duration
	Salt    string
	Allows  []string
	Edition string
	Deps    map[string]any
}

// ParseConfig reads the rustc keys of meta.
func ParseConfig(meta deck.Metadata) (Config, error) {
	cfg := Config{
		Timeout: DefaultTimeout,
		Salt:    meta.String(KeyCacheSalt, ""),
		Allows:  DefaultAllows,
		Edition: meta.String(KeyEdition, DefaultEdition),
	}

	if raw := meta.String(KeyTimeout, ""); raw != "" {
		d, err := parseTimeout(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.Timeout = d
	}

	if meta.Has(KeyAllows) {
		cfg.Allows = meta.Strings(KeyAllows)
	}

	v, _ := meta.Get(KeyDeps)
	deps, err := parseDeps(v)
	if err != nil {
		return Config{}, err
	}
	cfg.Deps = deps
	return cfg, nil
}

// parseTimeout accepts a Go duration ("10s", "1m30s") or a number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		secs, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return 0, fmt.Errorf("%w: %s: %q is neither a duration nor seconds", ErrInvalidConfig, KeyTimeout, raw)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %q", ErrInvalidConfig, KeyTimeout, raw)
	}
	return d, nil
}

// parseDeps accepts the [dependencies] table either as a mapping or as a
// list of TOML lines such as `rand = "0.8"`.
func parseDeps(v any) (map[string]any, error) {
	deps := make(map[string]any)
	switch t := v.(type) {
	case nil:
	case []any:
		lines := make([]string, len(t))
		for i, line := range t {
			lines[i] = fmt.Sprint(line)
		}
		if err := toml.Unmarshal([]byte(strings.Join(lines, "\n")), &deps); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyDeps, err)
		}
	case yaml.MapSlice:
		for _, item := range t {
			name, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s: crate name %v is not a string", ErrInvalidConfig, KeyDeps, item.Key)
			}
			deps[name] = plainValue(item.Value)
		}
	case string:
		if err := toml.Unmarshal([]byte(t), &deps); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, KeyDeps, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s must be a list or a mapping", ErrInvalidConfig, KeyDeps)
	}
	return deps, nil
}

// plainValue turns ordered YAML mappings into maps the TOML encoder knows.
func plainValue(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(t))
		for _, item := range t {
			m[fmt.Sprint(item.Key)] = plainValue(item.Value)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	default:
		return v
	}
}
