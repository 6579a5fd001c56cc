package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates no indicator cleared the similarity floor
	// (or an exact lookup token matched nothing).
	ErrNotFound = errors.New("indicator not found")

	// ErrAmbiguousDimension indicates a requested disaggregation dimension
	// is not supported by any indicator in the catalog, so filtering on it
	// can never succeed.
	ErrAmbiguousDimension = errors.New("disaggregation dimension unsupported")

	// ErrConflictingObservation indicates a response carried two observations
	// for the same indicator, area and period. The provider's data model
	// guarantees uniqueness, so a collision is a data integrity violation
	// and the whole arrangement fails.
	ErrConflictingObservation = errors.New("conflicting observation")

	// ErrMalformedResponse indicates a response payload is missing fields
	// required to reconstruct the dataset.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrDuplicateIdentifier indicates two dictionary records share an
	// identifier that must be unique across the catalog.
	ErrDuplicateIdentifier = errors.New("duplicate indicator identifier")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
