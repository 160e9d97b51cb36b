package cmd

import (
	"github.com/dendrascience/lazconv/convert"
	"github.com/dendrascience/lazconv/laz"
	"github.com/spf13/cobra"
)

// NewConvertCmd creates the convert subcommand, which converts and disposes
// one file at a time in this process.
func NewConvertCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "convert FOLDER",
		Short: "Convert LAZ files to LAS one at a time",
		Long: `Recursively find LAZ files under FOLDER and decompress each one to LAS
next to the original.

After confirmation every LAZ file is converted, then moved into the LAZ
archive folder under FOLDER, or deleted when --destroy is given. A file
whose conversion fails is left in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(args[0])
			if err != nil {
				return err
			}
			cfg, log, err := setup(flags.verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			runner := &convert.Runner{
				Strategy:    convert.Sequential,
				Codec:       laz.NewLaszip(cfg.Codec.Binary, log),
				Log:         log,
				NewDisposer: disposers(cfg.Archive, log),
			}
			return execute(cmd, runner, opts)
		},
	}

	flags.register(cmd)
	return cmd
}
