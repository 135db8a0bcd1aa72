package verify

import (
	"context"
	"go/ast"
	"go/token"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/logger"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/synth"
)

// astOptions compare syntax trees by content: positions and the parser's
// object/scope bookkeeping are ignored.
var astOptions = []cmp.Option{
	cmpopts.IgnoreTypes(token.Pos(0), &ast.Object{}, &ast.Scope{}),
	cmpopts.EquateEmpty(),
}

// Equivalent reports how the declarations in a and b differ. An empty diff
// means the two sources declare the same syntax, however they are laid out.
func Equivalent(a, b []byte) (string, error) {
	declsA, err := ParseDecls(a)
	if err != nil {
		return "", errors.Wrap(err, "first source")
	}
	declsB, err := ParseDecls(b)
	if err != nil {
		return "", errors.Wrap(err, "second source")
	}
	return cmp.Diff(declsA, declsB, astOptions...), nil
}

// Conforms reports how the shape of src differs from what s requires:
// field order and names, optional wrapping, both count literals and the
// interface binding.
func Conforms(s *model.Struct, src []byte) (string, error) {
	want, err := Expect(s)
	if err != nil {
		return "", err
	}
	got, err := Inspect(src)
	if err != nil {
		return "", err
	}
	return cmp.Diff(want, got, cmpopts.EquateEmpty()), nil
}

// Failure is a generation error of one strategy on one struct
type Failure struct {
	Index    int
	Struct   string
	Strategy string
	Kind     string
	Err      error
}

// Mismatch is a successful generation whose output is wrong: it does not
// conform to the model or differs from the reference strategy.
type Mismatch struct {
	Index     int
	Struct    string
	Strategy  string
	Reference string // empty when the mismatch is against the model
	Diff      string
}

// Summary is the outcome of Check
type Summary struct {
	Strategies []string
	Structs    int
	// Agreed counts structs for which every strategy that succeeded
	// produced conforming, mutually equivalent output.
	Agreed     int
	Failures   []Failure
	Mismatches []Mismatch
}

// OK reports whether no strategy produced wrong output. Generation failures
// alone do not make a summary fail: a strategy may legitimately reject an
// input another accepts.
func (s *Summary) OK() bool {
	return len(s.Mismatches) == 0
}

// FailureCount returns the number of failures of one strategy
func (s *Summary) FailureCount(strategy string) int {
	n := 0
	for _, f := range s.Failures {
		if f.Strategy == strategy {
			n++
		}
	}
	return n
}

// Check runs every generator on every struct, checks each output against the
// model and against the first generator that succeeded on that struct, and
// collects failures and mismatches without stopping. It returns early with
// ctx.Err() and the partial summary when ctx is done.
func Check(ctx context.Context, gens []synth.Generator, structs []model.Struct) (*Summary, error) {
	log := logger.ComponentLogger("verify")

	summary := &Summary{Structs: len(structs)}
	for _, gen := range gens {
		summary.Strategies = append(summary.Strategies, gen.Name())
	}

	for i := range structs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if checkStruct(log, summary, gens, i, &structs[i]) {
			summary.Agreed++
		}
	}

	log.Debugw("check complete",
		logger.FieldCount, summary.Structs,
		"agreed", summary.Agreed,
		logger.FieldFailures, len(summary.Failures),
		"mismatches", len(summary.Mismatches))
	return summary, nil
}

func checkStruct(log *zap.SugaredLogger, summary *Summary, gens []synth.Generator, index int, s *model.Struct) bool {
	var reference string
	var referenceSrc []byte
	ok := true

	mismatch := func(strategy, against, diff string) {
		ok = false
		summary.Mismatches = append(summary.Mismatches, Mismatch{
			Index: index, Struct: s.Name, Strategy: strategy, Reference: against, Diff: diff,
		})
		log.Warnw("output mismatch",
			logger.FieldStruct, s.Name,
			logger.FieldStrategy, strategy,
			"reference", against)
	}

	for _, gen := range gens {
		src, err := render(gen, s)
		if err != nil {
			summary.Failures = append(summary.Failures, Failure{
				Index: index, Struct: s.Name, Strategy: gen.Name(), Kind: errors.Kind(err), Err: err,
			})
			log.Debugw("generation failed",
				logger.FieldStruct, s.Name,
				logger.FieldStrategy, gen.Name(),
				logger.FieldKind, errors.Kind(err),
				logger.FieldError, err)
			continue
		}

		diff, err := Conforms(s, src)
		if err != nil {
			diff = err.Error()
		}
		if diff != "" {
			mismatch(gen.Name(), "", diff)
			continue
		}

		if referenceSrc == nil {
			reference, referenceSrc = gen.Name(), src
			continue
		}
		diff, err = Equivalent(referenceSrc, src)
		if err != nil {
			diff = err.Error()
		}
		if diff != "" {
			mismatch(gen.Name(), reference, diff)
		}
	}
	return ok
}

// render generates and prints one fragment
func render(gen synth.Generator, s *model.Struct) ([]byte, error) {
	frag, err := gen.Generate(s)
	if err != nil {
		return nil, err
	}
	return frag.Source()
}
