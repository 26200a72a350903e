package app

import (
	"github.com/spf13/cobra"
)

// NewBugpointCommand creates the root command for the bugpoint tool.
func NewBugpointCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bugpoint",
		Short: "Shrink a crashing IR function to a minimal reproducer.",
		Long: `bugpoint takes an IR function that crashes a code generator and
repeatedly simplifies it, keeping only the candidates that still
reproduce the crash, until no further simplification is possible.`,
	}

	cmd.AddCommand(NewReduceCommand())

	return cmd
}
