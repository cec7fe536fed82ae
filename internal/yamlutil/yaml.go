// Package yamlutil decodes the YAML read by md2slides: deck front matter,
// plugin tables and config files. Every entry point shares one size cap and
// one error prefix.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps a single YAML block (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes data into v, ignoring fields v does not declare.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

// UnmarshalOrdered decodes a YAML mapping keeping key order at every level.
// Nested mappings are returned as yaml.MapSlice as well. Front matter and
// plugin tables go through here because their order is significant.
func UnmarshalOrdered(data []byte) (yaml.MapSlice, error) {
	var out yaml.MapSlice
	if err := decode(data, &out, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
