// Package apperrors defines the error kinds shared by the conversion pipeline.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned for a document whose root kind is not recognized.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnresolvedReference is returned when a link relation names neither a
	// known data-type property nor a known object property.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrMissingResource is returned when an image record points at a file that does not exist.
	ErrMissingResource = errors.New("missing resource")

	// ErrCardinalityViolation is returned when a link type declares more than one asymmetric descriptor.
	ErrCardinalityViolation = errors.New("cardinality violation")

	// ErrMissingOptionalInput marks an absent link-relations or image-info table.
	// It is logged, never returned from a conversion.
	ErrMissingOptionalInput = errors.New("missing optional input")

	// ErrDuplicateEntity is returned when a legacy URI is registered twice for one entity kind.
	ErrDuplicateEntity = errors.New("duplicate entity")

	// ErrPhaseOrder is returned when an assembler phase is invoked out of order.
	ErrPhaseOrder = errors.New("phase order violation")
)

// UnresolvedReferenceError carries the three values of a link relation that could not be resolved.
type UnresolvedReferenceError struct {
	LinkURI string
	URI1    string
	URI2    string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s: no object property or data type property matching link %q (uri1=%q, uri2=%q)",
		ErrUnresolvedReference, e.LinkURI, e.URI1, e.URI2)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// IsFatalForBatch reports whether err must abort bulk ingestion rather than
// being logged against a single file.
func IsFatalForBatch(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrCardinalityViolation) ||
		errors.Is(err, ErrPhaseOrder)
}
