package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// Example usage:
//
//	if logger.ShouldOutput(verbosity, logger.OutputCompilerTrace) {
//	    compiler = guard.NewCompiler(log.Named("guard"))
//	}
const (
	VerbosityUser  = 0 // No flags: guards, warnings and errors only
	VerbosityInfo  = 1 // -v: + per-run summaries, watch events
	VerbosityDebug = 2 // -vv: + per-declaration progress, timing, config
	VerbosityTrace = 3 // -vvv: + compiler variant tracing
)

// VerbosityToLevel maps verbosity flags (-v, -vv, etc.) to zap log levels
//
// Mapping:
//
//	0 (none)  -> WarnLevel  (skipped declarations and errors)
//	1 (-v)    -> InfoLevel  (+ run summaries)
//	2+ (-vv)  -> DebugLevel (+ per-declaration progress; -vvv adds compiler tracing)
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
