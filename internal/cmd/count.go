package cmd

import (
	"path/filepath"

	"github.com/dendrascience/lazconv/convert"
	"github.com/dendrascience/lazconv/laz"
	"github.com/dendrascience/lazconv/util"
	"github.com/spf13/cobra"
)

// NewCountCmd creates the count subcommand. It runs discovery only and never
// prompts or writes.
func NewCountCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "count [FOLDER]",
		Short: "Count LAZ files per folder",
		Long: `Recursively count LAZ files under FOLDER (default: the current directory),
grouped by the folder that contains them.

The flat archive folders at the top of FOLDER (LAZ and LAZ_old) are skipped
unless --all is given. Nested folders with those names are always counted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			var opts []util.FindOption
			if !all {
				opts = append(opts,
					util.SkipPath(filepath.Join(root, convert.ArchiveName)),
					util.SkipPath(filepath.Join(root, convert.ParallelArchiveName)),
				)
			}
			files, err := util.FindFiles(root, laz.SourceExt, opts...)
			if err != nil {
				return err
			}
			convert.PrintDiscovery(cmd.OutOrStdout(), root, files)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include files inside archive folders")
	return cmd
}
