// Package main provides the lazconv command-line interface.
//
// lazconv decompresses LAZ point-cloud files to LAS in bulk. It finds every
// LAZ file below a folder, asks the operator to confirm, converts each one next
// to its source, and then archives or deletes the LAZ original.
//
// The main binary supports multiple subcommands:
//   - convert: Sequential conversion in this process
//   - dispatch: Parallel conversion on a Redis-backed worker pool
//   - worker: Serve conversions submitted by dispatch
//   - count: Count LAZ files per folder
package main
