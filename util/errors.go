// Package util provides utility functions for lazconv.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// Tree walk failures (permission denied subtrees, vanished roots)
	ErrDiscovery = errors.New("discovery failed")

	// Extension errors
	ErrInvalidExtension = errors.New("extension must start with '.'")
)
