package deck

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gosimple/slug"
	"golang.org/x/text/language"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// Metadata keys with a documented default.
const (
	KeyTitle       = "title"
	KeyLang        = "lang"
	KeyOutput      = "output"
	KeyOutputDir   = "output-dir"
	KeySlideWidth  = "slide-width"
	KeyFontSize    = "font-size"
	KeyFontFamily  = "font-family"
	KeyDescription = "description"
	KeyDate        = "date"
	KeyTheme       = "theme"
	KeyPlugins     = "plugins"
	KeyDebug       = "options-debug"
)

// Defaults applied when a key is absent.
const (
	DefaultTitle      = "Untitled"
	DefaultLang       = "en"
	DefaultOutputDir  = "output"
	DefaultOutputFile = "index.html"
	DefaultSlideWidth = "80%"
	DefaultFontSize   = "28px"
	DefaultFontFamily = "Arial, Helvetica, sans-serif"
	DefaultTheme      = "default"
)

// HTMLMetaKeys lists the metadata keys emitted as <meta name=...> tags, in
// emission order.
var HTMLMetaKeys = []string{"author", "keywords", "description"}

// ErrInvalidSettings wraps every settings validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the typed view of Metadata used by the driver and plugins.
type Settings struct {
	Title       string
	Lang        string
	OutputDir   string
	OutputFile  string
	SlideWidth  string
	FontSize    string
	FontFamily  string
	Description string
	Date        string
	Theme       string
	Debug       bool
}

// SettingsFrom reads settings from m, filling documented defaults.
func SettingsFrom(m Metadata) Settings {
	return Settings{
		Title:       m.String(KeyTitle, DefaultTitle),
		Lang:        m.String(KeyLang, DefaultLang),
		OutputDir:   m.String(KeyOutputDir, DefaultOutputDir),
		OutputFile:  outputFileName(m.String(KeyOutput, DefaultOutputFile)),
		SlideWidth:  m.String(KeySlideWidth, DefaultSlideWidth),
		FontSize:    m.String(KeyFontSize, DefaultFontSize),
		FontFamily:  m.String(KeyFontFamily, DefaultFontFamily),
		Description: m.String(KeyDescription, ""),
		Date:        m.String(KeyDate, ""),
		Theme:       m.String(KeyTheme, DefaultTheme),
		Debug:       m.Bool(KeyDebug),
	}
}

// outputFileName keeps names ending in .html and slugifies anything else,
// so "My Talk" becomes "my-talk.html".
func outputFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if fileutil.HasExt(name, ".html") {
		return name
	}
	s := slug.Make(name)
	if s == "" {
		return DefaultOutputFile
	}
	return s + ".html"
}

// Validate checks the settings are usable to build a deck.
func (s Settings) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.Lang, validation.Required, validation.By(isLanguageTag)),
		validation.Field(&s.OutputDir, validation.Required),
		validation.Field(&s.OutputFile, validation.Required, validation.By(isPlainFileName)),
		validation.Field(&s.SlideWidth, validation.Required, validation.By(isCSSValue)),
		validation.Field(&s.FontSize, validation.Required, validation.By(isCSSValue)),
		validation.Field(&s.FontFamily, validation.Required, validation.By(isCSSValue)),
		validation.Field(&s.Theme, validation.Required, validation.By(isPlainFileName)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

func isLanguageTag(value any) error {
	s, _ := value.(string)
	if _, err := language.Parse(s); err != nil {
		return fmt.Errorf("not a BCP 47 language tag: %q", s)
	}
	return nil
}

func isPlainFileName(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return errors.New("must be a file name without directories")
	}
	return nil
}

// isCSSValue rejects characters that would escape a CSS declaration.
func isCSSValue(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "{};<>") {
		return fmt.Errorf("unsafe CSS value: %q", s)
	}
	return nil
}
