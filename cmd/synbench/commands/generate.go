package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/logger"
	"github.com/teranos/synbench/synth"
	"github.com/teranos/synbench/synth/registry"
)

// GenerateCmd renders a Go source file with one strategy
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Go source for the workload or a model file",
	Long: `Generate one Go source file holding a struct, its introspection methods
and the interface binding for every input struct.

Structs a strategy cannot generate (for example a composite type with the
direct strategy) are reported and left out of the file.

Examples:
  synbench generate -o generated.go
  synbench generate --model shapes.toml --package shapes --strategy templated
  synbench generate --count 10000 --parallel 8 -o /dev/null`,
	RunE: runGenerate,
}

var (
	generateStrategy    string
	generatePackage     string
	generateOutput      string
	generateParallelism int
	generateCount       int
	generateModel       string
)

func init() {
	GenerateCmd.Flags().StringVar(&generateStrategy, "strategy", "", "Strategy to generate with (default from config: explicit)")
	GenerateCmd.Flags().StringVar(&generatePackage, "package", "", "Package clause of the generated file (default from config: generated)")
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default stdout)")
	GenerateCmd.Flags().IntVar(&generateParallelism, "parallel", 0, "Concurrent generations (0 or 1 = sequential)")
	GenerateCmd.Flags().IntVar(&generateCount, "count", 0, "Number of workload structs (default from config: 1000)")
	GenerateCmd.Flags().StringVar(&generateModel, "model", "", "Model description file used instead of the synthetic workload")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Generate.Strategy = generateStrategy
	}
	if cmd.Flags().Changed("package") {
		cfg.Generate.Package = generatePackage
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Generate.Parallelism = generateParallelism
	}
	if cmd.Flags().Changed("count") {
		cfg.Workload.Count = generateCount
	}
	if err := checkConfig(cmd, &cfg); err != nil {
		return err
	}

	gen, err := registry.Lookup(cfg.Generate.Strategy)
	if err != nil {
		return err
	}
	structs, err := loadStructs(cmd, generateModel, cfg.Workload.Count)
	if err != nil {
		return err
	}

	log := logger.ComponentLogger("generate")
	outcomes := synth.GenerateAll(cmd.Context(), gen, structs, synth.BatchOptions{Parallelism: cfg.Generate.Parallelism})
	if err := cmd.Context().Err(); err != nil {
		return errors.Wrap(err, "generation interrupted")
	}

	traceOutcomes(cmd, gen.Name(), outcomes)

	failures := synth.Failures(outcomes)
	for _, f := range failures {
		log.Warnw("struct skipped",
			logger.FieldStrategy, gen.Name(),
			logger.FieldIndex, f.Index,
			logger.FieldStruct, f.Struct.Name,
			logger.FieldKind, errors.Kind(f.Err),
			logger.FieldError, f.Err)
		if logger.ShouldOutput(verbosity(cmd), logger.OutputFailures) {
			status(cmd, pterm.Warning, "%s skipped: %v", f.Struct.Name, f.Err)
		}
	}

	src, err := synth.RenderFile(cfg.Generate.Package, synth.Fragments(outcomes))
	if err != nil {
		return err
	}

	w, closeOutput, err := openOutput(cmd, generateOutput)
	if err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		closeOutput()
		return errors.Wrap(err, "failed to write generated source")
	}
	if err := closeOutput(); err != nil {
		return errors.Wrap(err, "failed to write generated source")
	}

	log.Infow("source generated",
		logger.FieldStrategy, gen.Name(),
		logger.FieldPackage, cfg.Generate.Package,
		logger.FieldParallelism, cfg.Generate.Parallelism,
		logger.FieldCount, len(outcomes)-len(failures),
		logger.FieldFailures, len(failures),
		logger.FieldSize, len(src))

	generated := len(outcomes) - len(failures)
	if len(failures) > 0 {
		status(cmd, pterm.Warning, "Generated %d of %d structs with %s (%d skipped)", generated, len(outcomes), gen.Name(), len(failures))
	} else if generateOutput != "" && generateOutput != "-" {
		status(cmd, pterm.Success, "Generated %d structs with %s into %s", generated, gen.Name(), generateOutput)
	}
	return nil
}

// traceOutcomes shows the result of every struct at -vvv and its generated
// source at -vvvv
func traceOutcomes(cmd *cobra.Command, strategy string, outcomes []synth.Outcome) {
	v := verbosity(cmd)
	if !logger.ShouldOutput(v, logger.OutputInternalOp) {
		return
	}
	for _, o := range outcomes {
		if o.Err != nil {
			detail(cmd, logger.OutputInternalOp, "%s #%d %s: %s", strategy, o.Index, o.Struct.Name, errors.Kind(o.Err))
			continue
		}
		src, err := o.Fragment.Source()
		if err != nil {
			detail(cmd, logger.OutputInternalOp, "%s #%d %s: unprintable: %v", strategy, o.Index, o.Struct.Name, err)
			continue
		}
		detail(cmd, logger.OutputInternalOp, "%s #%d %s: ok, %d bytes", strategy, o.Index, o.Struct.Name, len(src))
		detail(cmd, logger.OutputFragments, "%s", src)
	}
}
