package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/synbench/config"
	"github.com/teranos/synbench/display"
	"github.com/teranos/synbench/errors"
	"github.com/teranos/synbench/logger"
	"github.com/teranos/synbench/model"
	"github.com/teranos/synbench/workload"
)

// jsonOutput reports whether results should be printed as JSON
func jsonOutput(cmd *cobra.Command) bool {
	return display.ShouldOutputJSON(cmd)
}

// verbosity returns the global -v count
func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// loadConfig returns a copy of the effective configuration so commands can
// apply their flag overrides before validating it
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, errors.Wrap(err, "failed to load config")
	}
	return *cfg, nil
}

// checkConfig validates the configuration after flag overrides and, at -vv,
// shows where it came from and the values in effect
func checkConfig(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !logger.ShouldOutput(verbosity(cmd), logger.OutputConfig) {
		return nil
	}
	v := verbosity(cmd)
	var categories []string
	for _, c := range logger.EnabledCategories(v) {
		categories = append(categories, logger.CategoryName(c))
	}
	detail(cmd, logger.OutputConfig, "verbosity %d (%s): %s", v, logger.VerbosityDescription(v), strings.Join(categories, ", "))

	sources := config.Sources()
	if len(sources) == 0 {
		sources = []string{"defaults"}
	}
	detail(cmd, logger.OutputConfig, "config sources: %s", strings.Join(sources, ", "))
	detail(cmd, logger.OutputConfig, "config: workload.count=%d bench.iterations=%d bench.warmup=%d bench.strategies=%s",
		cfg.Workload.Count, cfg.Bench.Iterations, cfg.Bench.Warmup, strings.Join(cfg.Bench.Strategies, ","))
	detail(cmd, logger.OutputConfig, "config: generate.strategy=%s generate.package=%s generate.parallelism=%d",
		cfg.Generate.Strategy, cfg.Generate.Package, cfg.Generate.Parallelism)
	return nil
}

// loadStructs reads the model file when one is given, otherwise generates
// the synthetic workload. At -vvvv the structs are dumped to stderr as TOML.
func loadStructs(cmd *cobra.Command, modelPath string, count int) ([]model.Struct, error) {
	var structs []model.Struct
	if modelPath == "" {
		structs = workload.Generate(count)
	} else {
		loaded, err := model.LoadFile(modelPath)
		if err != nil {
			return nil, err
		}
		logger.Debugw("model loaded", logger.FieldFile, modelPath, logger.FieldCount, len(loaded))
		structs = loaded
	}

	if logger.ShouldOutput(verbosity(cmd), logger.OutputDataDump) {
		if err := model.Encode(cmd.ErrOrStderr(), model.FormatTOML, structs); err != nil {
			return nil, errors.Wrap(err, "failed to dump structs")
		}
	}
	return structs, nil
}

// openOutput returns stdout when path is empty or "-", otherwise creates path
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create %s", path)
	}
	return f, f.Close, nil
}

// detail prints a diagnostic line on stderr when category is enabled at the
// current verbosity. Unlike status it is kept with --json, since stdout
// carries the JSON document.
func detail(cmd *cobra.Command, category logger.OutputCategory, format string, args ...interface{}) {
	if !logger.ShouldOutput(verbosity(cmd), category) {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

// PrintError reports a command failure on w with any hints attached to it.
// From -vv on the full error chain is printed as well.
func PrintError(w io.Writer, err error, verbosity int) {
	if err == nil || !logger.ShouldOutput(verbosity, logger.OutputErrors) {
		return
	}
	pterm.Error.WithWriter(w).Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.WithWriter(w).Println(hint)
	}
	if verbosity >= logger.VerbosityDebug {
		fmt.Fprintf(w, "%+v\n", err)
	}
}

// status prints a user-facing line on stderr unless JSON output was requested
func status(cmd *cobra.Command, printer pterm.PrefixPrinter, format string, args ...interface{}) {
	if jsonOutput(cmd) || !logger.ShouldOutput(verbosity(cmd), logger.OutputUserStatus) {
		return
	}
	printer.WithWriter(cmd.ErrOrStderr()).Printfln(format, args...)
}
