// Package bench measures generation throughput: each strategy runs over the
// same workload slice, in the same order, for a fixed number of timed passes.
package bench

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/logger"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth"
)

// Options controls a benchmark run
type Options struct {
	// Iterations is the number of timed passes per strategy (>= 1)
	Iterations int
	// Warmup is the number of untimed passes run before timing starts
	Warmup int
	// Progress receives run events; nil disables them
	Progress ProgressEmitter
}

// DefaultOptions returns a single timed pass without warmup
func DefaultOptions() Options {
	return Options{Iterations: 1}
}

// Validate checks the pass counts
func (o Options) Validate() error {
	if o.Iterations < 1 {
		return errors.Mark(errors.Newf("iterations must be at least 1, got %d", o.Iterations), errors.ErrInvalidConfig)
	}
	if o.Warmup < 0 {
		return errors.Mark(errors.Newf("warmup must not be negative, got %d", o.Warmup), errors.ErrInvalidConfig)
	}
	return nil
}

// Run benchmarks each generator in turn over structs. Generation output is
// discarded; failures are counted and never stop the run. The context is
// checked between passes: on cancellation Run returns the results gathered
// so far together with ctx.Err().
func Run(ctx context.Context, gens []synth.Generator, structs []model.Struct, opts Options) (*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	progress := opts.Progress
	if progress == nil {
		progress = nopEmitter{}
	}

	report := &Report{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Host:       CollectHost(),
		Workload:   len(structs),
		Iterations: opts.Iterations,
		Warmup:     opts.Warmup,
	}

	ctx = logger.WithRunID(ctx, report.RunID)
	log := logger.LoggerFromContext(ctx).Named("bench")
	log.Infow("benchmark started",
		logger.FieldElements, len(structs),
		logger.FieldIterations, opts.Iterations,
		logger.FieldWarmup, opts.Warmup)

	for _, gen := range gens {
		progress.EmitStage(gen.Name(), "running")

		result, err := runStrategy(ctx, gen, structs, opts)
		report.Results = append(report.Results, result)
		if err != nil {
			progress.EmitError(gen.Name(), err)
			return report, err
		}

		log.Infow("strategy complete",
			logger.FieldStrategy, result.Strategy,
			logger.FieldElapsedMS, result.Elapsed.Milliseconds(),
			logger.FieldOpsPerSec, result.OpsPerSecond(),
			logger.FieldFailures, result.Failures)
		progress.EmitProgress(result.Ops(), map[string]interface{}{
			"type":     "generations",
			"strategy": result.Strategy,
			"failures": result.Failures,
		})
	}

	progress.EmitComplete(map[string]interface{}{
		"run_id":     report.RunID,
		"strategies": len(report.Results),
	})
	return report, nil
}

// runStrategy runs the warmup and timed passes of one generator
func runStrategy(ctx context.Context, gen synth.Generator, structs []model.Struct, opts Options) (Result, error) {
	result := Result{Strategy: gen.Name(), Elements: len(structs)}

	for i := 0; i < opts.Warmup; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		pass(gen, structs)
	}

	for i := 0; i < opts.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		start := time.Now()
		failures := pass(gen, structs)
		elapsed := time.Since(start)

		result.Elapsed += elapsed
		result.Iterations++
		result.Failures += failures

		logger.Debugw("pass complete",
			logger.FieldStrategy, gen.Name(),
			logger.FieldIndex, i,
			logger.FieldElapsedMS, elapsed.Milliseconds(),
			logger.FieldFailures, failures)
	}
	return result, nil
}

// pass generates every struct once and returns the number of failures
func pass(gen synth.Generator, structs []model.Struct) int {
	failures := 0
	for i := range structs {
		if _, err := gen.Generate(&structs[i]); err != nil {
			failures++
		}
	}
	return failures
}
