package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across synbench.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldComponent = "component"

	// Generation
	FieldStrategy = "strategy"
	FieldStruct   = "struct"
	FieldIndex    = "index"
	FieldKind     = "kind"
	FieldPackage  = "package"

	// Benchmark
	FieldIterations = "iterations"
	FieldWarmup     = "warmup"
	FieldElements   = "elements"
	FieldFailures   = "failures"
	FieldElapsedMS  = "elapsed_ms"
	FieldOpsPerSec  = "ops_per_sec"

	// Counts and sizes
	FieldCount       = "count"
	FieldSize        = "size"
	FieldParallelism = "parallelism"

	// Errors
	FieldError = "error"

	// Files and paths
	FieldFile   = "file"
	FieldFormat = "format"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a benchmark run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Harness struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewHarness() *Harness {
//	    return &Harness{
//	        logger: logger.ComponentLogger("bench"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	strategyLogger := logger.ChildLogger(baseLogger, logger.FieldStrategy, gen.Name())
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
