package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

//go:embed styles templates
var embedded embed.FS

// Layer is one source of assets: the embedded set or a directory on disk.
type Layer struct {
	name string
	fsys fs.FS
}

// Compile-time interface check.
var _ Loader = (*Layer)(nil)

var embeddedLayer = &Layer{name: "embedded", fsys: embedded}

// Embedded returns the layer built into the binary.
func Embedded() *Layer {
	return embeddedLayer
}

// OpenDir returns a layer reading from dir. The directory must exist and be
// readable; its subdirectories are optional.
func OpenDir(dir string) (*Layer, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &Layer{name: abs, fsys: rootFS(abs)}, nil
}

// String names the layer in errors and logs.
func (l *Layer) String() string {
	return l.name
}

// Load reads one asset. A missing file yields the kind's not-found error.
func (l *Layer) Load(kind Kind, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(l.fsys, kind.path(name))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.errNotFound(), name)
	case err != nil:
		return "", fmt.Errorf("%w: %s: %v", ErrAssetRead, l.name, err)
	}
	return string(data), nil
}

// LoadStyle reads styles/{name}.css.
func (l *Layer) LoadStyle(name string) (string, error) {
	return l.Load(Style, name)
}

// LoadTemplate reads templates/{name}.html.
func (l *Layer) LoadTemplate(name string) (string, error) {
	return l.Load(Template, name)
}

// Names lists the assets of kind in the layer, sorted. A missing directory
// yields nil.
func (l *Layer) Names(kind Kind) []string {
	entries, err := fs.ReadDir(l.fsys, kind.dir())
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), kind.ext())
		if !ok || e.IsDir() || ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// rootFS opens files through an os.Root per call, so nothing outside the
// directory is reachable and no descriptor outlives the read.
type rootFS string

func (dir rootFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	root, err := os.OpenRoot(string(dir))
	if err != nil {
		return nil, err
	}
	defer root.Close()
	return root.Open(filepath.FromSlash(name))
}
