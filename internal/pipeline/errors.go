package pipeline

import "errors"

// Sentinel errors for the build pipeline.
var (
	// ErrReadInput indicates the source document could not be read.
	ErrReadInput = errors.New("cannot read input")

	// ErrWriteOutput indicates the deck could not be written.
	ErrWriteOutput = errors.New("cannot write output")

	// ErrHTMLConversion indicates HTML conversion failed.
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// ErrTemplate indicates the deck template could not be loaded or rendered.
	ErrTemplate = errors.New("deck template failed")

	// ErrInvalidOptions indicates a Driver was configured without a registry
	// or a default phase map.
	ErrInvalidOptions = errors.New("invalid pipeline options")
)
