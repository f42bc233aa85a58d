package apperrors

import "errors"

// ErrNotFound indicates that a requested record could not be found.
// On the confirm path this is a distinct condition: the provisional row
// was deleted between scan and review, not a transient fault.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrExtractionParse indicates the vision service returned missing or
// unparseable content. Wrapped errors carry the raw model text for
// diagnosis. Retrying the same bytes is pointless since the model is
// non-deterministic; the scan itself should be retried.
var ErrExtractionParse = errors.New("extraction parse error")

// ErrPersistence indicates the store was unreachable or rejected a write.
var ErrPersistence = errors.New("persistence error")
