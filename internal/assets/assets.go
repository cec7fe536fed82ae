package assets

import (
	"fmt"
	"strings"
)

// DefaultStyleName is the name of the built-in theme.
const DefaultStyleName = "default"

// DeckTemplateName is the name of the page template wrapping the slides.
const DeckTemplateName = "deck"

// Loader reads theme stylesheets and page templates by name. Names carry no
// extension and no directory.
type Loader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Kind selects a family of assets.
type Kind int

const (
	Style Kind = iota
	Template
)

func (k Kind) dir() string {
	if k == Template {
		return "templates"
	}
	return "styles"
}

func (k Kind) ext() string {
	if k == Template {
		return ".html"
	}
	return ".css"
}

func (k Kind) errNotFound() error {
	if k == Template {
		return ErrTemplateNotFound
	}
	return ErrStyleNotFound
}

// path is slash-separated, as io/fs expects.
func (k Kind) path(name string) string {
	return k.dir() + "/" + name + k.ext()
}

// ValidateName rejects names that could leave the asset directory or pick a
// different extension.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
