// Package plugins assembles the built-in plugins and their default phase map.
package plugins

import (
	_ "embed"
	"fmt"

	"github.com/alnah/go-md2slides/internal/plugin"
	"github.com/alnah/go-md2slides/internal/plugins/codeblock"
	"github.com/alnah/go-md2slides/internal/plugins/controls"
	"github.com/alnah/go-md2slides/internal/plugins/global"
	"github.com/alnah/go-md2slides/internal/plugins/highlight"
	"github.com/alnah/go-md2slides/internal/plugins/rustc"
	"github.com/alnah/go-md2slides/internal/plugins/splitview"
	"github.com/alnah/go-md2slides/internal/plugins/subslides"
	"github.com/alnah/go-md2slides/internal/plugins/tables"
	"github.com/alnah/go-md2slides/internal/plugins/texmath"
	"github.com/alnah/go-md2slides/internal/plugins/wrapping"
)

//go:embed plugins.yaml
var defaultPhases []byte

// Builtin returns the definition of every built-in plugin.
func Builtin() []plugin.Definition {
	return []plugin.Definition{
		global.Definition(),
		controls.Definition(),
		highlight.Definition(),
		codeblock.Definition(),
		texmath.Definition(),
		splitview.Definition(),
		tables.Definition(),
		subslides.Definition(),
		wrapping.Definition(),
		rustc.Definition(),
	}
}

// Registry returns a registry of the built-in plugins followed by extra.
// An extra plugin reusing a built-in name is rejected.
func Registry(extra ...plugin.Definition) (*plugin.Registry, error) {
	return plugin.NewRegistry(append(Builtin(), extra...)...)
}

// DefaultPhases returns the phase map used when a document names none.
func DefaultPhases() (plugin.PhaseConfig, error) {
	cfg, err := plugin.LoadPhaseConfig(defaultPhases)
	if err != nil {
		return nil, fmt.Errorf("default phases: %w", err)
	}
	return cfg, nil
}
