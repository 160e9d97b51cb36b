package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dendrascience/lazconv/util"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const (
	// ArchiveName is the archive folder used by the sequential strategy.
	ArchiveName = "LAZ"
	// ParallelArchiveName is the archive folder used by the parallel strategy.
	ParallelArchiveName = "LAZ_old"
)

// Disposition records what happened to a source after conversion.
type Disposition string

const (
	DispositionNone      Disposition = ""
	DispositionDeleted   Disposition = "deleted"
	DispositionMoved     Disposition = "moved"
	DispositionDuplicate Disposition = "deleted-duplicate"
)

// Disposer gets rid of a LAZ file once its LAS twin exists.
type Disposer interface {
	// Prepare runs once, after confirmation and before the first Dispose.
	Prepare(ctx context.Context) error
	Dispose(ctx context.Context, src string) (Disposition, error)
}

// Layout decides where inside the tree archived files land.
type Layout string

const (
	// LayoutFlat archives every file into one folder under the input root,
	// keyed by base name. Nested files sharing a base name collide.
	LayoutFlat Layout = "flat"
	// LayoutPerDir gives each source folder its own archive subfolder.
	LayoutPerDir Layout = "per-dir"
)

// ParseLayout validates a layout name.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutFlat, LayoutPerDir:
		return Layout(s), nil
	}
	return "", fmt.Errorf("unknown archive layout %q (want %q or %q)", s, LayoutFlat, LayoutPerDir)
}

// archiveKey is the archive location of src relative to root, for layout.
func archiveKey(root, name string, layout Layout, src string) (string, error) {
	base := filepath.Base(src)
	if layout != LayoutPerDir {
		return filepath.Join(name, base), nil
	}
	rel, err := filepath.Rel(root, filepath.Dir(src))
	if err != nil {
		return "", err
	}
	return filepath.Join(rel, name, base), nil
}

// Destroyer deletes sources outright.
type Destroyer struct{}

func (Destroyer) Prepare(context.Context) error { return nil }

func (Destroyer) Dispose(_ context.Context, src string) (Disposition, error) {
	if err := os.Remove(src); err != nil {
		return DispositionNone, err
	}
	return DispositionDeleted, nil
}

// DirArchiver moves sources into an archive folder inside the input tree.
type DirArchiver struct {
	Root   string
	Name   string
	Layout Layout

	log     *zap.Logger
	created map[string]bool
}

func NewDirArchiver(root, name string, layout Layout, log *zap.Logger) *DirArchiver {
	if log == nil {
		log = zap.NewNop()
	}
	return &DirArchiver{
		Root:    root,
		Name:    name,
		Layout:  layout,
		log:     log.Named("archive"),
		created: make(map[string]bool),
	}
}

// Prepare creates the flat archive folder if it does not exist yet. Per-dir
// folders are created on first use instead.
func (a *DirArchiver) Prepare(context.Context) error {
	if a.Layout == LayoutPerDir {
		return nil
	}
	return a.ensureDir(filepath.Join(a.Root, a.Name))
}

func (a *DirArchiver) ensureDir(dir string) error {
	if a.created[dir] {
		return nil
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.Mkdir(dir, 0o755); err != nil {
			return err
		}
		a.log.Info("Created archive folder", zap.String("folder", dir))
	} else if err != nil {
		return err
	}
	a.created[dir] = true
	return nil
}

// Dispose moves src into the archive. When the destination is already taken
// the source is deleted instead, so running twice never overwrites.
func (a *DirArchiver) Dispose(_ context.Context, src string) (Disposition, error) {
	key, err := archiveKey(a.Root, a.Name, a.Layout, src)
	if err != nil {
		return DispositionNone, err
	}
	dest := filepath.Join(a.Root, key)
	if filepath.Clean(dest) == filepath.Clean(src) {
		return DispositionNone, fmt.Errorf("%w: %s", ErrInArchive, src)
	}
	if err := a.ensureDir(filepath.Dir(dest)); err != nil {
		return DispositionNone, err
	}

	_, err = os.Stat(dest)
	switch {
	case err == nil:
		identical, cmpErr := util.SameContent(src, dest)
		fields := []zap.Field{zap.String("source", src), zap.String("destination", dest)}
		if cmpErr != nil {
			a.log.Warn("Archive destination exists, deleting source instead of moving", append(fields, zap.Error(cmpErr))...)
		} else if identical {
			a.log.Info("Archive destination exists, deleting source instead of moving", append(fields, zap.Bool("identical", true))...)
		} else {
			a.log.Warn("Archive destination exists with different content, deleting source instead of moving", append(fields, zap.Bool("identical", false))...)
		}
		if err := os.Remove(src); err != nil {
			return DispositionNone, err
		}
		return DispositionDuplicate, nil
	case !errors.Is(err, fs.ErrNotExist):
		return DispositionNone, err
	}

	if err := moveFile(src, dest); err != nil {
		return DispositionNone, err
	}
	return DispositionMoved, nil
}

// moveFile renames src to dest, copying across filesystems when rename cannot.
func moveFile(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil || !errors.Is(err, unix.EXDEV) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	return os.Remove(src)
}
