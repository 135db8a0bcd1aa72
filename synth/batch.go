package synth

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/synbench/model"
)

// BatchOptions controls GenerateAll
type BatchOptions struct {
	// Parallelism is the number of concurrent Generate calls; values <= 1
	// generate sequentially.
	Parallelism int
}

// Outcome is the result of generating one struct of a batch. Exactly one of
// Fragment and Err is set.
type Outcome struct {
	Index    int
	Struct   *model.Struct
	Fragment Fragment
	Err      error
}

// GenerateAll runs gen over every struct. A failing struct only affects its
// own Outcome; the batch carries on. Outcomes are returned in input order.
// Structs not started before ctx is done get ctx.Err() as their error.
func GenerateAll(ctx context.Context, gen Generator, structs []model.Struct, opts BatchOptions) []Outcome {
	outcomes := make([]Outcome, len(structs))

	run := func(i int) {
		s := &structs[i]
		outcomes[i] = Outcome{Index: i, Struct: s}
		if err := ctx.Err(); err != nil {
			outcomes[i].Err = err
			return
		}
		outcomes[i].Fragment, outcomes[i].Err = gen.Generate(s)
	}

	if opts.Parallelism <= 1 {
		for i := range structs {
			run(i)
		}
		return outcomes
	}

	// Each goroutine writes only its own slot, so no locking is needed
	var g errgroup.Group
	g.SetLimit(opts.Parallelism)
	for i := range structs {
		i := i
		g.Go(func() error {
			run(i)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Fragments returns the successful fragments of outcomes, in order.
func Fragments(outcomes []Outcome) []Fragment {
	frags := make([]Fragment, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			frags = append(frags, o.Fragment)
		}
	}
	return frags
}

// Failures returns the failed outcomes, in order.
func Failures(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
