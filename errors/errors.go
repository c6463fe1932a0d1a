// Package errors provides error handling for asyncgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints on CLI failures
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrSpecTooLarge) {
//	    // handle oversized input
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors for spec ingestion failures.
// Each access failure carries its own sentinel so the CLI can report a
// specific message rather than a generic I/O error.
var (
	// ErrSpecNotFound indicates the input path does not exist
	ErrSpecNotFound = New("specification file not found")

	// ErrNotRegularFile indicates the input path is a directory, device or
	// other non-regular file
	ErrNotRegularFile = New("path is not a regular file")

	// ErrSpecTooLarge indicates the input exceeds the configured size ceiling
	ErrSpecTooLarge = New("specification file exceeds size limit")

	// ErrSpecForbidden indicates the input file could not be opened for reading
	ErrSpecForbidden = New("specification file is not readable")

	// ErrInvalidSpec indicates the document failed AsyncAPI schema validation
	ErrInvalidSpec = New("specification failed validation")

	// ErrEmptySpec indicates the document parsed but yielded no usable root
	ErrEmptySpec = New("specification document is empty")
)

// IsAccessError reports whether err is one of the input-access sentinels,
// raised before any parsing is attempted.
func IsAccessError(err error) bool {
	return err != nil && IsAny(err, ErrSpecNotFound, ErrNotRegularFile, ErrSpecTooLarge, ErrSpecForbidden)
}

// IsValidationError reports whether err is or wraps ErrInvalidSpec.
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrInvalidSpec)
}
