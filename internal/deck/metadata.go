package deck

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Metadata is the frozen document-level configuration parsed from front
// matter. The zero value is an empty, usable Metadata. Methods never mutate
// the receiver; With returns a new value.
type Metadata struct {
	items yaml.MapSlice
	index map[string]int
}

// NewMetadata freezes items. Later duplicates of a key win, keeping the
// position of the first occurrence.
func NewMetadata(items yaml.MapSlice) Metadata {
	m := Metadata{index: make(map[string]int, len(items))}
	for _, item := range items {
		key := fmt.Sprint(item.Key)
		if i, ok := m.index[key]; ok {
			m.items[i].Value = item.Value
			continue
		}
		m.index[key] = len(m.items)
		m.items = append(m.items, yaml.MapItem{Key: key, Value: item.Value})
	}
	return m
}

// With returns a copy of m where every key in overrides replaces the
// existing value. Keys absent from m are appended in overrides order.
func (m Metadata) With(overrides yaml.MapSlice) Metadata {
	merged := make(yaml.MapSlice, 0, len(m.items)+len(overrides))
	merged = append(merged, m.items...)
	merged = append(merged, overrides...)
	return NewMetadata(merged)
}

// WithDefaults returns a copy of m with every key of defaults that m lacks
// appended. Existing keys keep their value.
func (m Metadata) WithDefaults(defaults yaml.MapSlice) Metadata {
	merged := make(yaml.MapSlice, 0, len(m.items)+len(defaults))
	merged = append(merged, m.items...)
	for _, item := range defaults {
		if !m.Has(fmt.Sprint(item.Key)) {
			merged = append(merged, item)
		}
	}
	return NewMetadata(merged)
}

// Get returns the raw value stored under key.
func (m Metadata) Get(key string) (any, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.items[i].Value, true
}

// Has reports whether key is present, even with a null value.
func (m Metadata) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// String returns the value under key formatted as text, or def when the key
// is absent, null or empty.
func (m Metadata) String(key, def string) string {
	v, ok := m.Get(key)
	if !ok || v == nil {
		return def
	}
	s := fmt.Sprint(v)
	if s == "" {
		return def
	}
	return s
}

// Bool returns the boolean under key. Strings are parsed with strconv.ParseBool;
// anything else is false.
func (m Metadata) Bool(key string) bool {
	v, ok := m.Get(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		return err == nil && parsed
	default:
		return false
	}
}

// Strings returns the list under key. A scalar becomes a one-element list.
func (m Metadata) Strings(key string) []string {
	v, ok := m.Get(key)
	if !ok || v == nil {
		return nil
	}
	switch list := v.(type) {
	case []any:
		out := make([]string, 0, len(list))
		for _, e := range list {
			out = append(out, fmt.Sprint(e))
		}
		return out
	case []string:
		return append([]string(nil), list...)
	default:
		return []string{fmt.Sprint(v)}
	}
}

// Keys returns the keys in document order.
func (m Metadata) Keys() []string {
	keys := make([]string, len(m.items))
	for i, item := range m.items {
		keys[i] = item.Key.(string)
	}
	return keys
}

// Len returns the number of keys.
func (m Metadata) Len() int {
	return len(m.items)
}
