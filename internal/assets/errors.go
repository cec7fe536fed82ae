package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName reports an empty name or one with a path
	// separator or a dot.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath reports a custom directory that is missing,
	// not a directory, or unreadable.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead covers every other failure to read an existing asset,
	// including a symlink leaving the directory.
	ErrAssetRead = errors.New("failed to read asset")
)
