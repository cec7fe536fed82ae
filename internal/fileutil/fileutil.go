// Package fileutil provides file and path utility functions.
package fileutil

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "work" -> false (name)
//   - "./work.yaml" -> true (relative path)
//   - "/etc/md2slides.yaml" -> true (absolute)
//   - "C:\configs\work.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExt reports whether path ends in one of exts, ignoring case.
// Extensions include the dot.
func HasExt(path string, exts ...string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// WithDefaultExt appends ext to a path that has no extension.
func WithDefaultExt(path, ext string) string {
	if filepath.Ext(path) == "" {
		return path + ext
	}
	return path
}

// IsLocalPath reports whether a link target (an img src, an href) points to
// the local filesystem. Fragments, protocol-relative links and URLs with a
// scheme are not local.
func IsLocalPath(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return true
	}
	// A one-letter scheme is a Windows drive, not a URL.
	return u.Scheme == "" || len(u.Scheme) == 1
}
