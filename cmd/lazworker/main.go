// Command lazworker runs a conversion worker for "lazconv dispatch" on hosts
// that do not need the full CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/lazconv/internal/cmd"
	"github.com/dendrascience/lazconv/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	worker := cmd.NewWorkerCmd()
	worker.Use = "lazworker"
	worker.Version = version.GetFullVersion()
	err := fang.Execute(ctx, worker)
	stop()
	os.Exit(cmd.ExitCode(err))
}
