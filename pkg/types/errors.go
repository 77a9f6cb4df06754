package types

import "errors"

// Conversion errors, grouped by the failure kind that produced them.
var (
	// Structural parse failures: a file already routed to a format bucket
	// does not parse as that format. Fatal for the whole import call.
	ErrMalformedAnnotation = errors.New("malformed annotation file")

	// ErrMissingField reports a required element or key absent from an
	// otherwise well-formed annotation file.
	ErrMissingField = errors.New("required annotation field missing")

	// Type coercion failures: a cell that must be numeric is not.
	ErrNotNumeric = errors.New("value is not numeric")

	// Format dispatch failures.
	ErrUnknownFormat     = errors.New("unrecognized annotation format")
	ErrUnsupportedFormat = errors.New("unsupported annotation format")

	// ErrSchemaEmpty reports a configured canonical schema with no columns.
	ErrSchemaEmpty = errors.New("canonical schema must not be empty")
)
