package bundle

import (
	"fmt"
	"os"
	"path/filepath"
)

// Directory permissions, matching the rest of the CLI.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// Dir is a directory handle rooted at an absolute path.
type Dir struct {
	path string
}

// OpenCacheDir returns a handle on path, creating it when absent.
// Existing contents are kept.
func OpenCacheDir(path string) (Dir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Dir{}, fmt.Errorf("%w: %v", ErrCreateDir, err)
	}
	if err := os.MkdirAll(abs, dirPermissions); err != nil {
		return Dir{}, fmt.Errorf("%w: %v", ErrCreateDir, err)
	}
	return Dir{path: abs}, nil
}

// OpenFreshDir returns a handle on an empty directory at path, removing any
// previous contents.
func OpenFreshDir(path string) (Dir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Dir{}, fmt.Errorf("%w: %v", ErrCreateDir, err)
	}
	if err := os.RemoveAll(abs); err != nil {
		return Dir{}, fmt.Errorf("%w: %v", ErrCreateDir, err)
	}
	if err := os.MkdirAll(abs, dirPermissions); err != nil {
		return Dir{}, fmt.Errorf("%w: %v", ErrCreateDir, err)
	}
	return Dir{path: abs}, nil
}

// Path returns the absolute path of the directory.
func (d Dir) Path() string { return d.path }

// Join returns the path of name inside d.
func (d Dir) Join(name ...string) string {
	return filepath.Join(append([]string{d.path}, name...)...)
}

// Fresh returns an empty subdirectory, wiping previous contents.
func (d Dir) Fresh(name string) (Dir, error) {
	return OpenFreshDir(d.Join(name))
}

// Cache returns a subdirectory that keeps its contents across builds.
func (d Dir) Cache(name string) (Dir, error) {
	return OpenCacheDir(d.Join(name))
}

// Exists reports whether name exists inside d.
func (d Dir) Exists(name string) bool {
	_, err := os.Stat(d.Join(name))
	return err == nil
}

// WriteFile writes data to name inside d and returns the written path.
func (d Dir) WriteFile(name string, data []byte) (string, error) {
	p := d.Join(name)
	if err := os.WriteFile(p, data, filePermissions); err != nil {
		return "", err
	}
	return p, nil
}

// ReadFile reads name inside d.
func (d Dir) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(d.Join(name)) // #nosec G304 -- name is produced by plugins, rooted in d
}

// Remove deletes d and everything below it.
func (d Dir) Remove() error {
	return os.RemoveAll(d.path)
}
