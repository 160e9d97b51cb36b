package cmd

import (
	"fmt"

	"github.com/dendrascience/lazconv/convert"
	"github.com/dendrascience/lazconv/internal/config"
	"github.com/dendrascience/lazconv/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runFlags are shared by convert and dispatch.
type runFlags struct {
	destroy bool
	layout  string
	dryRun  bool
	verbose bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.destroy, "destroy", false, "Delete LAZ files after conversion instead of archiving them")
	cmd.Flags().StringVar(&f.layout, "layout", string(convert.LayoutFlat), "Archive layout: flat or per-dir")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be done without making changes")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
}

func (f *runFlags) options(root string) (convert.Options, error) {
	layout, err := convert.ParseLayout(f.layout)
	if err != nil {
		return convert.Options{}, err
	}
	return convert.Options{
		Root:    root,
		Destroy: f.destroy,
		Layout:  layout,
		DryRun:  f.dryRun,
	}, nil
}

// setup loads configuration and builds the logger for a command.
func setup(verbose bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Log.Format)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log, err = logger.WithFile(log, level, logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.FileMaxSizeMB,
		MaxBackups: cfg.Log.FileMaxBackups,
		MaxAgeDays: cfg.Log.FileMaxAgeDays,
		Compress:   true,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// disposers archives to a bucket when one is configured and to the local
// filesystem otherwise. The bucket client is only created for confirmed runs.
func disposers(cfg config.ArchiveConfig, log *zap.Logger) convert.DisposerFactory {
	local := convert.LocalDisposers(log)
	if !cfg.UseBucket() {
		return local
	}
	return func(opts convert.Options, archiveName string) (convert.Disposer, error) {
		if opts.Destroy {
			return local(opts, archiveName)
		}
		store, err := convert.NewMinIOStore(cfg)
		if err != nil {
			return nil, err
		}
		return convert.NewBucketArchiver(store, cfg.Bucket, opts.Root, archiveName, opts.Layout, log), nil
	}
}

// execute wires the command's streams into runner and performs one run.
func execute(cmd *cobra.Command, runner *convert.Runner, opts convert.Options) error {
	runner.Gate = convert.NewGate(cmd.InOrStdin(), cmd.OutOrStdout())
	runner.Out = cmd.OutOrStdout()

	runner.Log.Debug("Starting run",
		zap.String("root", opts.Root),
		zap.Stringer("strategy", runner.Strategy),
		zap.Bool("destroy", opts.Destroy),
		zap.String("layout", string(opts.Layout)),
	)
	_, err := runner.Run(cmd.Context(), opts)
	return err
}
