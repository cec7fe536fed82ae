package plugin

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// PhaseConfig lists, per phase, the plugins enrolled in it, in order.
type PhaseConfig map[Phase][]string

// LoadPhaseConfig parses a YAML mapping of phase name to plugin names.
func LoadPhaseConfig(data []byte) (PhaseConfig, error) {
	raw, err := yamlutil.UnmarshalOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhaseConfig, err)
	}
	return ParsePhaseConfig(raw)
}

// ParsePhaseConfig converts a decoded YAML value, such as the "plugins"
// metadata entry, into a PhaseConfig. Unknown phases and a name listed twice
// in one phase are rejected.
func ParsePhaseConfig(v any) (PhaseConfig, error) {
	entries, err := phaseEntries(v)
	if err != nil {
		return nil, err
	}

	cfg := make(PhaseConfig, len(entries))
	for _, e := range entries {
		phase, err := ParsePhase(e.Key)
		if err != nil {
			return nil, err
		}
		names, err := nameList(phase, e.Value)
		if err != nil {
			return nil, err
		}
		cfg[phase] = append(cfg[phase], names...)
		if err := checkDuplicates(phase, cfg[phase]); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Validate checks every phase is known, no phase lists a plugin twice, and
// every configured name is registered.
func (c PhaseConfig) Validate(registry *Registry) error {
	for phase, names := range c {
		if _, err := ParsePhase(string(phase)); err != nil {
			return err
		}
		if err := checkDuplicates(phase, names); err != nil {
			return err
		}
	}
	for _, phase := range Phases {
		for _, name := range c[phase] {
			if _, ok := registry.Lookup(name); !ok {
				return unknownPlugin(name, registry)
			}
		}
	}
	return nil
}

type phaseEntry struct {
	Key   string
	Value any
}

func phaseEntries(v any) ([]phaseEntry, error) {
	switch m := v.(type) {
	case yaml.MapSlice:
		out := make([]phaseEntry, 0, len(m))
		for _, item := range m {
			out = append(out, phaseEntry{Key: fmt.Sprint(item.Key), Value: item.Value})
		}
		return out, nil
	case map[string]any:
		out := make([]phaseEntry, 0, len(m))
		for _, p := range Phases {
			if val, ok := m[string(p)]; ok {
				out = append(out, phaseEntry{Key: string(p), Value: val})
			}
		}
		for k, val := range m {
			if _, err := ParsePhase(k); err != nil {
				out = append(out, phaseEntry{Key: k, Value: val})
			}
		}
		return out, nil
	case map[string][]string:
		out := make([]phaseEntry, 0, len(m))
		for k, val := range m {
			out = append(out, phaseEntry{Key: k, Value: val})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected a mapping of phase to plugin list, got %T", ErrInvalidPhaseConfig, v)
	}
}

func nameList(phase Phase, v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []any:
		names := make([]string, 0, len(list))
		for _, e := range list {
			s, ok := e.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("%w: phase %s: plugin name %v is not a string", ErrInvalidPhaseConfig, phase, e)
			}
			names = append(names, s)
		}
		return names, nil
	default:
		return nil, fmt.Errorf("%w: phase %s: expected a list, got %T", ErrInvalidPhaseConfig, phase, v)
	}
}

func checkDuplicates(phase Phase, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("%w: %q listed twice in phase %s", ErrDuplicatePlugin, n, phase)
		}
		seen[n] = true
	}
	return nil
}

func unknownPlugin(name string, registry *Registry) error {
	return fmt.Errorf("%w: %q (available: %s)", ErrUnknownPlugin, name, strings.Join(registry.Names(), ", "))
}
