package bundle

import (
	"fmt"
	"html"
	"io/fs"
	"path"
	"strings"
)

// DefaultDist is the plugin-relative directory copied when a plugin does not
// name one.
const DefaultDist = "dist"

// Resource is one file a plugin asks the deck page to reference.
// Name is relative to Dist inside Root.
type Resource struct {
	Name   string
	Plugin string
	Root   fs.FS
	Dist   string
}

// key identifies the copy operation a resource belongs to.
type key struct {
	plugin string
	dist   string
}

func (r Resource) key() key {
	return key{plugin: r.Plugin, dist: r.dist()}
}

func (r Resource) dist() string {
	if r.Dist == "" {
		return DefaultDist
	}
	return r.Dist
}

// LinkPath is the document-relative URL of the resource.
func (r Resource) LinkPath() string {
	return path.Join(ResourcesDir, r.Plugin, r.Name)
}

// HTMLLink returns the tag loading the resource, or "" for files the page
// does not load directly.
func (r Resource) HTMLLink() string {
	href := html.EscapeString(r.LinkPath())
	switch strings.ToLower(path.Ext(r.Name)) {
	case ".css":
		return `<link rel="stylesheet" href="` + href + `">`
	case ".js":
		return `<script type="text/javascript" src="` + href + `"></script>`
	default:
		return ""
	}
}

// ValidateName checks that name is a clean relative slash path that stays
// inside its dist directory.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidResource)
	}
	if strings.Contains(name, `\`) || strings.Contains(name, "://") || !fs.ValidPath(name) || name == "." {
		return fmt.Errorf("%w: %q", ErrInvalidResource, name)
	}
	return nil
}
