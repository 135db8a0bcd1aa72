package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/synbench/logger"
	"github.com/teranos/synbench/model"
)

// WorkloadCmd dumps the synthetic workload as a model description
var WorkloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Print the synthetic workload as a model description",
	Long: `Print the deterministic workload in a format that generate, verify and
bench accept with --model. The same --count always prints the same structs.

Examples:
  synbench workload --count 3
  synbench workload --format yaml -o workload.yaml`,
	RunE: runWorkload,
}

var (
	workloadCount  int
	workloadFormat string
	workloadOutput string
)

func init() {
	WorkloadCmd.Flags().IntVar(&workloadCount, "count", 0, "Number of workload structs (default from config: 1000)")
	WorkloadCmd.Flags().StringVar(&workloadFormat, "format", model.FormatTOML, "Output format: toml, yaml, json")
	WorkloadCmd.Flags().StringVarP(&workloadOutput, "output", "o", "", "Output file (default stdout)")
}

func runWorkload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("count") {
		cfg.Workload.Count = workloadCount
	}
	if err := checkConfig(cmd, &cfg); err != nil {
		return err
	}

	structs, err := loadStructs(cmd, "", cfg.Workload.Count)
	if err != nil {
		return err
	}

	w, closeOutput, err := openOutput(cmd, workloadOutput)
	if err != nil {
		return err
	}
	if err := model.Encode(w, workloadFormat, structs); err != nil {
		closeOutput()
		return err
	}
	logger.Debugw("workload written",
		logger.FieldCount, len(structs),
		logger.FieldFormat, workloadFormat,
		logger.FieldFile, workloadOutput)
	return closeOutput()
}
