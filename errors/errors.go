// Package errors provides error handling for tsguard.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints shown to the user next to fatal failures
//   - Marks, so wrapped errors keep their category
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := parse(); err != nil {
//	    return errors.Wrap(err, "failed to parse module")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "remove the inline declaration or the specifier list")
//
//	// Check the category of a failure
//	if errors.IsRecoverable(err) {
//	    // skip the declaration, keep going
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
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Categorisation
var (
	Mark = crdb.Mark
)

// Assertions and panics
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the guard generation pipeline.
// Use these with errors.Is(); attach them with errors.Mark() so the
// original message survives.
var (
	// ErrParse indicates the input is not valid TypeScript
	ErrParse = New("parse error")

	// ErrMalformedExport indicates an export clause that both declares a
	// binding and re-exports specifiers
	ErrMalformedExport = New("malformed export clause")

	// ErrUnsupportedExport indicates an export that has no checkable type shape
	ErrUnsupportedExport = New("unsupported export shape")

	// ErrUnsupportedType indicates a type construct the compiler does not handle
	ErrUnsupportedType = New("unsupported type construct")

	// ErrDuplicateDeclaration indicates a second exported type with the same name
	ErrDuplicateDeclaration = New("duplicate declaration")

	// ErrUnresolvedReference indicates a guard that calls a guard which is not emitted
	ErrUnresolvedReference = New("unresolved reference")
)

// IsRecoverable reports whether err only invalidates a single declaration.
// The pipeline skips the declaration and continues with the rest.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	return IsAny(err,
		ErrUnsupportedExport,
		ErrUnsupportedType,
		ErrDuplicateDeclaration,
		ErrUnresolvedReference,
	)
}

// IsFatal reports whether err must abort the whole run.
// Parse errors and malformed export clauses are always fatal; anything
// not classified as recoverable is treated as fatal too.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if IsAny(err, ErrParse, ErrMalformedExport) {
		return true
	}
	return !IsRecoverable(err)
}

// Kind returns a short stable name for the category of err, used in
// diagnostics and the JSON report.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrParse):
		return "parse"
	case Is(err, ErrMalformedExport):
		return "malformed-export"
	case Is(err, ErrUnsupportedExport):
		return "unsupported-export"
	case Is(err, ErrUnsupportedType):
		return "unsupported-type"
	case Is(err, ErrDuplicateDeclaration):
		return "duplicate-declaration"
	case Is(err, ErrUnresolvedReference):
		return "unresolved-reference"
	default:
		return "internal"
	}
}
