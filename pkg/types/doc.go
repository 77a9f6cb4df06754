// Package types defines the annotation entities, the canonical record table,
// format identifiers, configuration, and standard error types shared by the
// labelpivot conversion pipeline.
package types
