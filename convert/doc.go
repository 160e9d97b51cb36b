// Package convert implements the LAZ to LAS workflow around the codec.
//
// A Runner walks the input tree, reports what it found, asks the operator
// through a Gate, and only then converts each file and disposes of the
// original. Two strategies exist:
//   - Sequential: convert then dispose, one file at a time
//   - Parallel: submit everything to a Pool, wait for all, then dispose in
//     discovery order
//
// Disposal is pluggable. Destroyer deletes, DirArchiver moves into an archive
// folder ("LAZ" or "LAZ_old") and BucketArchiver uploads to object storage.
// Archivers never overwrite: an occupied destination makes them delete the
// source instead.
//
// Every file yields an Outcome. A failure is contained to its own file; the
// Summary lists failures at the end and Run returns an error wrapping
// ErrPartialFailure.
package convert
