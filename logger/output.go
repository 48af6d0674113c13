package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories gate
// output that is too noisy for its log level alone:
//
//	2 (-vv)     - + Config file contents
//	3 (-vvv)    - + Compiler variant tracing

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 2 (-vv) - Detailed
	OutputConfig OutputCategory = iota // Effective config values

	// Level 3 (-vvv) - Trace
	OutputCompilerTrace // Every visited type-expression variant
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputConfig:        VerbosityDebug,
	OutputCompilerTrace: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
