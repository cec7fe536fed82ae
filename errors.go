package md2slides

import (
	"errors"

	"github.com/alnah/go-md2slides/internal/bundle"
	"github.com/alnah/go-md2slides/internal/deck"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/plugin"
)

// Sentinel errors for library operations. Errors returned by Build and Watch
// match these with errors.Is.
var (
	// Input document errors.
	ErrReadInput          = pipeline.ErrReadInput
	ErrEmptyDocument      = deck.ErrEmptyDocument
	ErrInvalidFrontMatter = deck.ErrInvalidFrontMatter
	ErrInvalidSettings    = deck.ErrInvalidSettings

	// Plugin configuration errors.
	ErrDuplicatePlugin    = plugin.ErrDuplicatePlugin
	ErrInvalidPhase       = plugin.ErrInvalidPhase
	ErrInvalidPhaseConfig = plugin.ErrInvalidPhaseConfig
	ErrUnknownPlugin      = plugin.ErrUnknownPlugin
	ErrPluginInit         = plugin.ErrPluginInit
	ErrInvalidMarkup      = plugin.ErrInvalidMarkup
	ErrRewrite            = plugin.ErrRewrite

	// Bundle and output errors.
	ErrCreateDir        = bundle.ErrCreateDir
	ErrInvalidResource  = bundle.ErrInvalidResource
	ErrResourceCopy     = bundle.ErrResourceCopy
	ErrResourceConflict = bundle.ErrResourceConflict
	ErrWriteOutput      = pipeline.ErrWriteOutput
	ErrHTMLConversion   = pipeline.ErrHTMLConversion
	ErrTemplate         = pipeline.ErrTemplate

	// Asset loading errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrEmptyInput indicates NewBuilder was given no input path.
	ErrEmptyInput = errors.New("input path cannot be empty")
)

// IsInputError reports whether err comes from reading or parsing the input
// document rather than from a plugin or the output directory.
func IsInputError(err error) bool {
	return pipeline.IsInputError(err)
}
