package bundle

import "errors"

// Sentinel errors for bundle operations.
var (
	// ErrCreateDir indicates the output directory tree could not be prepared.
	ErrCreateDir = errors.New("cannot create bundle directory")

	// ErrInvalidResource indicates a resource name is not a relative slash path.
	ErrInvalidResource = errors.New("invalid resource path")

	// ErrResourceCopy indicates a registered resource could not be materialized.
	ErrResourceCopy = errors.New("cannot copy resource")

	// ErrResourceConflict indicates two different images share a bundle name.
	ErrResourceConflict = errors.New("resource name conflict")

	// ErrAlreadyPopulated indicates Populate was called twice on one bundle.
	ErrAlreadyPopulated = errors.New("bundle already populated")
)
