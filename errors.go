package phoenixcel

import "errors"

// Error kinds. Every error returned by this package wraps exactly one of these,
// so callers may test for them with errors.Is.
var (
	// ErrConfig reports a required parameter that was not supplied.
	ErrConfig = errors.New("missing parameter")
	// ErrLookup reports a column, identifier, group, or position that does not exist.
	ErrLookup = errors.New("not found")
	// ErrResource reports input that could not be read.
	ErrResource = errors.New("unreadable input")
	// ErrShape reports data that would leave a table misaligned.
	ErrShape = errors.New("shape mismatch")
	// ErrType reports a value that cannot be used by the requested operation.
	ErrType = errors.New("unsupported value")
	// ErrEmpty reports a reduction over zero values that has no defined result.
	ErrEmpty = errors.New("no values")
)
