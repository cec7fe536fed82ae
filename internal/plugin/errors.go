package plugin

import "errors"

// Sentinel errors for plugin loading and routing.
var (
	// ErrDuplicatePlugin indicates two plugins share an identity.
	ErrDuplicatePlugin = errors.New("duplicate plugin")

	// ErrInvalidDefinition indicates a definition without a name or Init.
	ErrInvalidDefinition = errors.New("invalid plugin definition")

	// ErrInvalidPhase indicates a phase name outside the fixed phase list.
	ErrInvalidPhase = errors.New("invalid plugin phase")

	// ErrInvalidPhaseConfig indicates the phase configuration is not a map of lists.
	ErrInvalidPhaseConfig = errors.New("invalid plugin configuration")

	// ErrUnknownPlugin indicates a configured name has no definition.
	ErrUnknownPlugin = errors.New("unknown plugin")

	// ErrPluginInit indicates a plugin initializer failed.
	ErrPluginInit = errors.New("plugin initialization failed")

	// ErrInvalidMarkup indicates a rewrite plugin found malformed markup of its own.
	ErrInvalidMarkup = errors.New("invalid plugin markup")

	// ErrRewrite wraps failures raised by a rewrite replace function.
	ErrRewrite = errors.New("rewrite failed")
)
