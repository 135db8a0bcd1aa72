// Package display holds output helpers shared by the synbench commands.
package display

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/synbench/errors"
)

// ShouldOutputJSON determines if a command should output JSON based on its flags
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	// A --json flag set on the command line wins, wherever it is defined
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	globalFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return globalFlag
}

// OutputJSON marshals v and prints it to the command's output
func OutputJSON(cmd *cobra.Command, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
