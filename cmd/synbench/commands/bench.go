package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/synbench/bench"
	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/logger"
	"github.com/teranos/synbench/synth/registry"
)

// BenchCmd runs the benchmark harness
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the code generation strategies",
	Long: `Run every selected strategy over the same workload, in the same order,
and report elapsed time, per-struct cost and throughput.

The workload is the deterministic synthetic one unless --model points at a
model description file (toml, yaml or json).

Examples:
  synbench bench                              # 1000 structs, all strategies
  synbench bench --iterations 10 --warmup 2   # average over 10 timed passes
  synbench bench --strategy explicit --strategy direct
  synbench bench --json > report.json`,
	RunE: runBench,
}

var (
	benchCount      int
	benchIterations int
	benchWarmup     int
	benchStrategies []string
	benchModel      string
)

func init() {
	BenchCmd.Flags().IntVar(&benchCount, "count", 0, "Number of workload structs (default from config: 1000)")
	BenchCmd.Flags().IntVar(&benchIterations, "iterations", 0, "Timed passes per strategy (default from config: 1)")
	BenchCmd.Flags().IntVar(&benchWarmup, "warmup", 0, "Untimed passes before timing")
	BenchCmd.Flags().StringArrayVar(&benchStrategies, "strategy", nil, "Strategy to run (repeatable; default all)")
	BenchCmd.Flags().StringVar(&benchModel, "model", "", "Model description file used instead of the synthetic workload")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("count") {
		cfg.Workload.Count = benchCount
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Bench.Iterations = benchIterations
	}
	if cmd.Flags().Changed("warmup") {
		cfg.Bench.Warmup = benchWarmup
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Bench.Strategies = benchStrategies
	}
	if err := checkConfig(cmd, &cfg); err != nil {
		return err
	}

	gens, err := registry.Select(cfg.Bench.Strategies)
	if err != nil {
		return err
	}
	structs, err := loadStructs(cmd, benchModel, cfg.Workload.Count)
	if err != nil {
		return err
	}

	var progress bench.ProgressEmitter = bench.NewCLIEmitter(verbosity(cmd))
	if jsonOutput(cmd) {
		progress = bench.NewJSONEmitter(cmd.ErrOrStderr())
	}

	report, err := bench.Run(cmd.Context(), gens, structs, bench.Options{
		Iterations: cfg.Bench.Iterations,
		Warmup:     cfg.Bench.Warmup,
		Progress:   progress,
	})
	if report == nil {
		return err
	}
	if err != nil {
		status(cmd, pterm.Warning, "Benchmark interrupted, showing partial results")
	}
	showHost(cmd, report.Host)

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		if werr := report.WriteJSON(out); werr != nil {
			return errors.Wrap(werr, "failed to write report")
		}
	} else if werr := report.RenderTable(out); werr != nil {
		return werr
	}
	return err
}

// showHost prints the benchmark host at -v
func showHost(cmd *cobra.Command, h bench.Host) {
	detail(cmd, logger.OutputHostInfo, "host: %s/%s %s, GOMAXPROCS %d", h.OS, h.Arch, h.GoVersion, h.GOMAXPROCS)
	if h.CPUModel != "" {
		detail(cmd, logger.OutputHostInfo, "cpu: %s (%d logical, %d physical)", h.CPUModel, h.LogicalCPUs, h.PhysicalCPUs)
	}
	if h.MemoryTotal > 0 {
		detail(cmd, logger.OutputHostInfo, "memory: %d MiB", h.MemoryTotal>>20)
	}
}
