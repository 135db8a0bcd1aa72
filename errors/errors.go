// Package errors provides error handling for synbench.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Marking errors with a sentinel while keeping their own message
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
//	// Classify a concrete failure
//	return errors.Mark(errors.Newf("bad type %q", expr), errors.ErrParseFailure)
//
//	// Check errors
//	if errors.IsParseFailure(err) {
//	    // skip this struct
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
	Mark         = crdb.Mark
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

// Assertions
var AssertionFailedf = crdb.AssertionFailedf

// Generation failure kinds. Generators mark their concrete errors with one of
// these so callers can classify a failure with errors.Is.
var (
	// ErrParseFailure indicates a type expression is not a valid Go type reference
	ErrParseFailure = New("parse failure")

	// ErrUnsupportedType indicates a type expression outside the closed primitive set
	ErrUnsupportedType = New("unsupported type")

	// ErrInvalidIdentifier indicates a struct or attribute name cannot become an exported Go identifier
	ErrInvalidIdentifier = New("invalid identifier")

	// ErrInvalidConfig indicates configuration values are out of range
	ErrInvalidConfig = New("invalid configuration")
)

// IsParseFailure checks if an error is or wraps ErrParseFailure
func IsParseFailure(err error) bool {
	return err != nil && Is(err, ErrParseFailure)
}

// IsUnsupportedType checks if an error is or wraps ErrUnsupportedType
func IsUnsupportedType(err error) bool {
	return err != nil && Is(err, ErrUnsupportedType)
}

// IsInvalidIdentifier checks if an error is or wraps ErrInvalidIdentifier
func IsInvalidIdentifier(err error) bool {
	return err != nil && Is(err, ErrInvalidIdentifier)
}

// IsGenerationFailure reports whether err is one of the deterministic
// per-struct generation failures (as opposed to an unexpected error).
func IsGenerationFailure(err error) bool {
	return err != nil && IsAny(err, ErrParseFailure, ErrUnsupportedType, ErrInvalidIdentifier)
}

// Kind returns a short label for a generation failure, or "error" for
// anything else. Used in reports and log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsParseFailure(err):
		return "parse_failure"
	case IsUnsupportedType(err):
		return "unsupported_type"
	case IsInvalidIdentifier(err):
		return "invalid_identifier"
	default:
		return "error"
	}
}
