// Package version reports build metadata for the lazconv binaries.
//
// Values come from -ldflags when the release pipeline sets them:
//
//	-ldflags "-X github.com/dendrascience/lazconv/version.Version=v1.2.0 \
//	          -X github.com/dendrascience/lazconv/version.Commit=abc1234 \
//	          -X github.com/dendrascience/lazconv/version.Date=2026-01-01T00:00:00Z"
//
// Without them the package falls back to the module build info embedded by
// the Go toolchain (module version, vcs.revision, vcs.time), so `go install`
// builds still report something useful.
package version
