package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/synbench/display"
	"github.com/teranos/synbench/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show synbench version information",
	Long:  `Display version, build time, commit hash, and platform information for the synbench binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()

		if jsonOutput(cmd) {
			return display.OutputJSON(cmd, info)
		}

		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		return nil
	},
}
