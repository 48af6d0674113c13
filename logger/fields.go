package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across tsguard.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Inputs and outputs
	FieldFile   = "file"
	FieldLine   = "line"
	FieldColumn = "column"
	FieldOutput = "output"

	// Declarations and type constructs
	FieldDeclaration = "declaration"
	FieldConstruct   = "construct"
	FieldVariant     = "variant"
	FieldPath        = "path"
	FieldReference   = "reference"
	FieldExport      = "export"

	// Errors
	FieldError     = "error"
	FieldErrorKind = "error_kind"

	// Counts and timing
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldDepth      = "depth"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	compiler := guard.NewCompiler(logger.ComponentLogger("guard"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	declLogger := logger.ChildLogger(baseLogger, logger.FieldDeclaration, decl.Name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}

// OrNop returns log, or a no-op logger when log is nil.
func OrNop(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log == nil {
		return zap.NewNop().Sugar()
	}
	return log
}
