package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/synbench/display"
	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/logger"
	"github.com/teranos/synbench/synth/registry"
	"github.com/teranos/synbench/verify"
)

// VerifyCmd checks that the strategies produce equivalent, correct code
var VerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that all strategies generate equivalent code",
	Long: `Generate every input struct with each selected strategy, re-parse the
output and check that it matches the model (field order, optional wrapping,
count literals, interface binding) and that all strategies agree.

Generation failures are listed but do not fail the check; wrong output does.

Examples:
  synbench verify
  synbench verify --model shapes.yaml -v`,
	RunE: runVerify,
}

var (
	verifyCount      int
	verifyStrategies []string
	verifyModel      string
)

func init() {
	VerifyCmd.Flags().IntVar(&verifyCount, "count", 0, "Number of workload structs (default from config: 1000)")
	VerifyCmd.Flags().StringArrayVar(&verifyStrategies, "strategy", nil, "Strategy to check (repeatable; default all)")
	VerifyCmd.Flags().StringVar(&verifyModel, "model", "", "Model description file used instead of the synthetic workload")
}

// summaryJSON is the --json view of a verify.Summary
type summaryJSON struct {
	OK         bool           `json:"ok"`
	Strategies []string       `json:"strategies"`
	Structs    int            `json:"structs"`
	Agreed     int            `json:"agreed"`
	Failures   []failureJSON  `json:"failures"`
	Mismatches []mismatchJSON `json:"mismatches"`
}

type failureJSON struct {
	Index    int    `json:"index"`
	Struct   string `json:"struct"`
	Strategy string `json:"strategy"`
	Kind     string `json:"kind"`
	Error    string `json:"error"`
}

type mismatchJSON struct {
	Index     int    `json:"index"`
	Struct    string `json:"struct"`
	Strategy  string `json:"strategy"`
	Reference string `json:"reference,omitempty"`
	Diff      string `json:"diff"`
}

func newSummaryJSON(s *verify.Summary) summaryJSON {
	out := summaryJSON{
		OK:         s.OK(),
		Strategies: s.Strategies,
		Structs:    s.Structs,
		Agreed:     s.Agreed,
		Failures:   []failureJSON{},
		Mismatches: []mismatchJSON{},
	}
	for _, f := range s.Failures {
		out.Failures = append(out.Failures, failureJSON{
			Index: f.Index, Struct: f.Struct, Strategy: f.Strategy, Kind: f.Kind, Error: f.Err.Error(),
		})
	}
	for _, m := range s.Mismatches {
		out.Mismatches = append(out.Mismatches, mismatchJSON(m))
	}
	return out
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("count") {
		cfg.Workload.Count = verifyCount
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Bench.Strategies = verifyStrategies
	}
	if err := checkConfig(cmd, &cfg); err != nil {
		return err
	}

	gens, err := registry.Select(cfg.Bench.Strategies)
	if err != nil {
		return err
	}
	structs, err := loadStructs(cmd, verifyModel, cfg.Workload.Count)
	if err != nil {
		return err
	}

	summary, err := verify.Check(cmd.Context(), gens, structs)
	if err != nil {
		return errors.Wrap(err, "verification interrupted")
	}

	if jsonOutput(cmd) {
		if err := display.OutputJSON(cmd, newSummaryJSON(summary)); err != nil {
			return err
		}
	} else {
		printSummary(cmd, summary)
	}

	if !summary.OK() {
		return errors.Newf("%d mismatched outputs", len(summary.Mismatches))
	}
	return nil
}

func printSummary(cmd *cobra.Command, s *verify.Summary) {
	out := cmd.OutOrStdout()
	v := verbosity(cmd)

	if logger.ShouldOutput(v, logger.OutputFailures) {
		for _, f := range s.Failures {
			fmt.Fprintf(out, "  %s %s #%d %s: %v\n", pterm.Yellow("skip"), f.Strategy, f.Index, f.Struct, f.Err)
		}
	}
	for _, m := range s.Mismatches {
		against := "model"
		if m.Reference != "" {
			against = m.Reference
		}
		fmt.Fprintf(out, "%s %s #%d %s differs from %s:\n%s\n", pterm.Red("✗"), m.Strategy, m.Index, m.Struct, against, m.Diff)
	}

	failures := make([]string, 0, len(s.Strategies))
	for _, name := range s.Strategies {
		if n := s.FailureCount(name); n > 0 {
			failures = append(failures, fmt.Sprintf("%s %d", name, n))
		}
	}
	line := fmt.Sprintf("%d/%d structs agree across %s", s.Agreed, s.Structs, strings.Join(s.Strategies, ", "))
	if len(failures) > 0 {
		line += fmt.Sprintf(" (generation failures: %s)", strings.Join(failures, ", "))
	}

	if s.OK() {
		fmt.Fprintf(out, "%s %s\n", pterm.Green("✓"), line)
	} else {
		fmt.Fprintf(out, "%s %s, %d mismatched outputs\n", pterm.Red("✗"), line, len(s.Mismatches))
	}
}
