package rustc

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/alnah/go-md2slides/internal/bundle"
)

// Layout of the cargo project.
const (
	manifestFile = "Cargo.toml"
	cargoDir     = ".cargo"
	cargoConfig  = "config.toml"
	srcDir       = "src"
	binDir       = "bin"
	targetDir    = "target"
	crateName    = "rust"
)

type manifest struct {
	Package      manifestPackage `toml:"package"`
	Dependencies map[string]any  `toml:"dependencies"`
}

type manifestPackage struct {
	Name    string   `toml:"name"`
	Version string   `toml:"version"`
	Edition string   `toml:"edition"`
	Authors []string `toml:"authors"`
}

type buildConfig struct {
	Build struct {
		RustFlags []string `toml:"rustflags"`
	} `toml:"build"`
}

// project is the cargo project slide code compiles in.
type project struct {
	root bundle.Dir
	bin  bundle.Dir
}

// scaffold writes Cargo.toml, .cargo/config.toml and an empty library
// into root, and creates src/bin for the block sources.
func scaffold(root bundle.Dir, cfg Config) (*project, error) {
	m := manifest{
		Package: manifestPackage{
			Name:    crateName,
			Version: "0.1.0",
			Edition: cfg.Edition,
			Authors: []string{},
		},
		Dependencies: cfg.Deps,
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", manifestFile, err)
	}
	if _, err := root.WriteFile(manifestFile, data); err != nil {
		return nil, fmt.Errorf("writing %s: %w", manifestFile, err)
	}

	var bc buildConfig
	bc.Build.RustFlags = rustFlags(cfg.Allows)
	data, err = toml.Marshal(bc)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", cargoConfig, err)
	}
	cargo, err := root.Cache(cargoDir)
	if err != nil {
		return nil, err
	}
	if _, err := cargo.WriteFile(cargoConfig, data); err != nil {
		return nil, fmt.Errorf("writing %s: %w", cargoConfig, err)
	}

	src, err := root.Cache(srcDir)
	if err != nil {
		return nil, err
	}
	if _, err := src.WriteFile("lib.rs", nil); err != nil {
		return nil, fmt.Errorf("writing lib.rs: %w", err)
	}
	bin, err := src.Fresh(binDir)
	if err != nil {
		return nil, err
	}
	return &project{root: root, bin: bin}, nil
}

// rustFlags turns lint names into "-A name" pairs.
func rustFlags(allows []string) []string {
	flags := make([]string, 0, 2*len(allows))
	for _, lint := range allows {
		flags = append(flags, "-A", lint)
	}
	return flags
}

// writeSource stores the source of binary name in src/bin.
func (p *project) writeSource(name, source string) error {
	if _, err := p.bin.WriteFile(name+".rs", []byte(source)); err != nil {
		return fmt.Errorf("writing %s.rs: %w", name, err)
	}
	return nil
}

// cleanup removes the block sources and the build output. The manifest and
// the cache stay.
func (p *project) cleanup() error {
	return errors.Join(
		p.bin.Remove(),
		os.RemoveAll(p.root.Join(targetDir)),
	)
}
