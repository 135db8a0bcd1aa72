package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/synbench/cmd/synbench/commands"
	"github.com/teranos/synbench/config"
	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/logger"
)

var rootCmd = &cobra.Command{
	Use:   "synbench",
	Short: "synbench - compare Go code generation strategies",
	Long: `synbench generates Go structs with introspection methods from a data-model
description using three strategies and compares them:

  explicit   build every syntax tree node by hand, parsing field types
  templated  splice parsed field types into a declaration template
  direct     build nodes for predeclared types without any parsing

Available commands:
  bench     - Benchmark the strategies over the same workload
  generate  - Generate Go source with one strategy
  verify    - Check that all strategies produce equivalent code
  workload  - Print the synthetic workload
  config    - Show and validate configuration
  version   - Show build information

Examples:
  synbench bench --iterations 5     # Compare all strategies
  synbench generate -o out.go       # Generate the workload with explicit
  synbench verify                   # Cross-check the strategies`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output results as JSON")

	rootCmd.AddCommand(commands.BenchCmd)
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.VerifyCmd)
	rootCmd.AddCommand(commands.WorkloadCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd, err := rootCmd.ExecuteContextC(ctx); err != nil {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		commands.PrintError(os.Stderr, err, verbosity)
		stop()
		os.Exit(1)
	}
}
