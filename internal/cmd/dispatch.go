package cmd

import (
	"github.com/dendrascience/lazconv/convert"
	"github.com/dendrascience/lazconv/laz"
	"github.com/dendrascience/lazconv/pool"
	"github.com/spf13/cobra"
)

// NewDispatchCmd creates the dispatch subcommand, the parallel strategy.
func NewDispatchCmd() *cobra.Command {
	var (
		flags runFlags
		local bool
	)

	cmd := &cobra.Command{
		Use:   "dispatch FOLDER",
		Short: "Convert LAZ files in parallel on a worker pool",
		Long: `Recursively find LAZ files under FOLDER and convert them all in parallel.

Every conversion is submitted to the worker pool at once and the command
waits for all of them. Successfully converted files are then moved into the
LAZ_old archive folder under FOLDER, or deleted when --destroy is given.

Workers are started with "lazconv worker" and must see FOLDER at the same
path. With --local the conversions run in this process instead.`,
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

			var p convert.Pool
			if local {
				p = pool.NewLocal(laz.NewLaszip(cfg.Codec.Binary, log), cfg.Queue.Concurrency, log)
			} else {
				p = pool.NewDispatcher(cfg.Redis, cfg.Queue, log)
			}
			defer p.Close()

			runner := &convert.Runner{
				Strategy:    convert.Parallel,
				Pool:        p,
				Log:         log,
				NewDisposer: disposers(cfg.Archive, log),
			}
			return execute(cmd, runner, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&local, "local", false, "Run conversions in this process instead of on the worker pool")
	return cmd
}
