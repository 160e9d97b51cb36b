// Package util provides the filesystem helpers lazconv is built on.
//
// File Discovery:
//   - FindFiles walks a tree and collects files by literal extension suffix
//   - SkipDirNamed prunes archive folders left behind by earlier runs
//   - CountByFolder groups matches by their containing folder for reporting
//   - TargetPath derives the output path of a conversion
//
// Content Hashing:
//   - GetFileHash computes SHA-256 digests of file content
//   - SameContent compares two files, short-circuiting on size
//
// Errors are exposed as sentinels in errors.go and are wrapped with the
// underlying cause, so callers should match them with errors.Is.
package util
