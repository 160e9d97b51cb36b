package cmd

import (
	"fmt"

	"github.com/dendrascience/lazconv/laz"
	"github.com/dendrascience/lazconv/pool"
	"github.com/dendrascience/lazconv/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewWorkerCmd creates the worker subcommand, which serves conversion tasks
// until its context is cancelled.
func NewWorkerCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a conversion worker",
		Long: `Join the worker pool and convert LAZ files submitted by "lazconv dispatch".

The worker reads the same REDIS_* and QUEUE_* settings as the dispatcher and
runs QUEUE_CONCURRENCY conversions at a time using LAZ_CODEC_BIN.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			log.Info("Starting worker",
				zap.String("version", version.GetVersion()),
				zap.String("redis", cfg.Redis.Addr()),
				zap.String("queue", cfg.Queue.Name),
				zap.Int("concurrency", cfg.Queue.Concurrency),
			)

			consumer := pool.NewConsumer(cfg.Redis, cfg.Queue, laz.NewLaszip(cfg.Codec.Binary, log), log)
			if err := consumer.Start(); err != nil {
				return fmt.Errorf("failed to start worker: %w", err)
			}
			<-cmd.Context().Done()
			log.Info("Received shutdown signal")
			consumer.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}
