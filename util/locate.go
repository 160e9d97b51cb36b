package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FolderCount is the number of matches found directly inside one folder.
type FolderCount struct {
	Folder string
	Count  int
}

type findOptions struct {
	skipDirs  map[string]bool
	skipPaths map[string]bool
}

// FindOption tunes FindFiles.
type FindOption func(*findOptions)

// SkipDirNamed prunes every directory whose base name is name. The root
// itself is never pruned.
func SkipDirNamed(name string) FindOption {
	return func(o *findOptions) {
		if name == "" {
			return
		}
		o.skipDirs[name] = true
	}
}

// SkipPath prunes the single directory at path. The root itself is never
// pruned.
func SkipPath(path string) FindOption {
	return func(o *findOptions) {
		if path == "" {
			return
		}
		o.skipPaths[filepath.Clean(path)] = true
	}
}

// CheckRoot verifies root exists and is a directory. Failures wrap
// ErrDiscovery.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s: %w", ErrDiscovery, root, ErrExpectedDirectory)
	}
	return nil
}

// FindFiles walks root and returns the path of every non-directory entry whose
// name ends with ext. Matching is a literal, case-sensitive suffix test.
// Paths are root-joined and come back in walk order, which is lexical per
// directory. Symlinks are reported but never followed.
//
// Any walk error aborts the scan and is returned wrapped in ErrDiscovery.
func FindFiles(root, ext string, opts ...FindOption) ([]string, error) {
	if !strings.HasPrefix(ext, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	o := findOptions{skipDirs: map[string]bool{}, skipPaths: map[string]bool{}}
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	files := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (o.skipDirs[d.Name()] || o.skipPaths[filepath.Clean(path)]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	return files, nil
}

// CountByFolder groups paths by their immediate containing folder. Folders are
// listed in the order they were first seen.
func CountByFolder(paths []string) []FolderCount {
	index := make(map[string]int)
	counts := []FolderCount{}
	for _, p := range paths {
		dir := filepath.Dir(p)
		i, ok := index[dir]
		if !ok {
			i = len(counts)
			index[dir] = i
			counts = append(counts, FolderCount{Folder: dir})
		}
		counts[i].Count++
	}
	return counts
}

// TargetPath swaps the extension of src for ext, keeping the directory and stem.
func TargetPath(src, ext string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ext
}
