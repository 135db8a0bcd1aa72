package logger

import "sort"

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Errors with hints, final status
//	1 (-v)      - + Progress, host info, per-struct generation failures
//	2 (-vv)     - + Per-pass timing, config sources and values
//	3 (-vvv)    - + Per-struct generation outcome
//	4 (-vvvv)   - + Full generated fragments and model dumps
//
// Results (tables, reports, generated files) go to stdout and are not a
// category: they are printed at every verbosity. Categories go to stderr.

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputErrors     OutputCategory = iota // Errors with hints
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Strategy started/finished
	OutputHostInfo // CPU and memory of the benchmark host
	OutputFailures // Individual generation failures

	// Level 2 (-vv) - Detailed
	OutputTiming // Per-pass timing
	OutputConfig // Config values loaded/applied

	// Level 3 (-vvv) - Debug
	OutputInternalOp // Per-struct generation outcome

	// Level 4 (-vvvv) - Full dump
	OutputFragments // Generated source of every fragment
	OutputDataDump  // Full workload and model contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputHostInfo: VerbosityInfo,
	OutputFailures: VerbosityInfo,

	OutputTiming: VerbosityDebug,
	OutputConfig: VerbosityDebug,

	OutputInternalOp: VerbosityTrace,

	OutputFragments: VerbosityAll,
	OutputDataDump:  VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputErrors:     "errors",
	OutputUserStatus: "status",
	OutputProgress:   "progress",
	OutputHostInfo:   "host",
	OutputFailures:   "failures",
	OutputTiming:     "timing",
	OutputConfig:     "config",
	OutputInternalOp: "internal",
	OutputFragments:  "fragments",
	OutputDataDump:   "data-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given
// verbosity, in declaration order
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	sort.Slice(enabled, func(i, j int) bool { return enabled[i] < enabled[j] })
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "results, errors, progress, host info, and failures"
	case VerbosityDebug:
		return "above + timing, config details"
	case VerbosityTrace:
		return "above + per-struct generation outcome"
	case VerbosityAll:
		return "full output including generated fragments"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
