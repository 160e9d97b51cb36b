package cmd

import (
	"github.com/dendrascience/lazconv/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command for the lazconv CLI with every
// subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lazconv",
		Short: "lazconv - Decompress LAZ point clouds to LAS in bulk",
		Long: `lazconv finds every LAZ file under a folder, converts each one to LAS next
to the original, then archives or deletes the LAZ source.

Use subcommands to perform different operations:
  - convert: Convert files one at a time in this process
  - dispatch: Convert all files in parallel on a worker pool
  - worker: Serve conversions for dispatch
  - count: Count LAZ files per folder without touching them

Settings are read from the environment and from a .env file in the working
directory.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	groupConversion := "conversion"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupConversion,
		Title: "Conversion Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	convertCmd := NewConvertCmd()
	dispatchCmd := NewDispatchCmd()
	workerCmd := NewWorkerCmd()
	countCmd := NewCountCmd()

	convertCmd.GroupID = groupConversion
	dispatchCmd.GroupID = groupConversion
	workerCmd.GroupID = groupConversion
	countCmd.GroupID = groupUtilities

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(dispatchCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(countCmd)

	return rootCmd
}
