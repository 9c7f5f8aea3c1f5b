package schema

import "errors"

// Error taxonomy (§7). NumericDegenerate is intentionally not a sentinel:
// per spec.md it is handled locally by returning zero vectors, never
// surfaced as an error.
var (
	// ErrInvalidConfig: weights negative, thresholds non-positive, damping
	// outside (0,1).
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidRecord: a required field is missing or non-finite. The
	// whole run fails; records are never silently dropped.
	ErrInvalidRecord = errors.New("invalid record")
)
