package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool
)

func init() {
	// Safe no-op logger until Initialize runs, so library callers never
	// hit a nil logger
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger.
//
// Diagnostics go to stderr so that generated guards written to stdout stay
// clean. verbosity follows the -v flag count (see VerbosityToLevel).
func Initialize(jsonOutput bool, verbosity int) error {
	return InitializeWithWriter(jsonOutput, verbosity, os.Stderr)
}

// InitializeWithWriter is Initialize with an explicit sink (used by tests
// and by the watch loop when output is redirected).
func InitializeWithWriter(jsonOutput bool, verbosity int, w io.Writer) error {
	JSONOutput = jsonOutput

	if theme := os.Getenv("TSGUARD_LOG_THEME"); theme != "" {
		SetTheme(theme)
	}

	level := zap.NewAtomicLevelAt(VerbosityToLevel(verbosity))

	var encoder zapcore.Encoder
	if jsonOutput {
		// JSON structured output for machine consumption
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		// Human-readable console output with minimal, calm formatting
		encoder = newMinimalEncoder()
	}

	Logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level)).Sugar()
	return nil
}

// Cleanup flushes any buffered log entries
func Cleanup() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
