// Package cmd provides the command-line interface implementation for lazconv.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - convert: Sequential conversion in the current process
//   - dispatch: Parallel conversion on the asynq worker pool, or in-process with --local
//   - worker: Consumer side of the worker pool
//   - count: Discovery report without side effects
//
// Each command is implemented in its own file with a constructor returning a
// *cobra.Command. Errors flow back to main, where ExitCode turns them into the
// process status.
package cmd
