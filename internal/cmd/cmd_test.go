package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/lazconv/convert"
	"github.com/dendrascience/lazconv/util"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// fakeLaszip installs a shell script standing in for laszip. Sources whose
// content starts with "corrupt" fail to decode.
func fakeLaszip(t *testing.T) {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "laszip")
	script := `#!/bin/sh
case "$(head -c 7 "$2")" in
corrupt) echo "bad chunk table" >&2; exit 1 ;;
esac
cp "$2" "$4"
`
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	t.Chdir(t.TempDir())
	t.Setenv("LAZ_CODEC_BIN", bin)
	t.Setenv("ARCHIVE_BUCKET", "")
	t.Setenv("LOG_LEVEL", "error")
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConvertCmd_Archives(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{
		"a.laz":       "points-a",
		"north/b.laz": "points-b",
		"notes.txt":   "ignored",
	})

	out, err := run(t, "yes\n", "convert", root)
	require.NoError(t, err)

	assert.Contains(t, out, fmt.Sprintf("Found 2 LAZ files in %s.", root))
	assert.Contains(t, out, "Are you sure you want to convert 2 LAZ files")
	assert.Contains(t, out, "Processing complete.")

	assert.FileExists(t, filepath.Join(root, "a.las"))
	assert.FileExists(t, filepath.Join(root, "north", "b.las"))
	assert.NoFileExists(t, filepath.Join(root, "a.laz"))
	assert.NoFileExists(t, filepath.Join(root, "north", "b.laz"))

	archived, err := os.ReadFile(filepath.Join(root, convert.ArchiveName, "b.laz"))
	require.NoError(t, err)
	assert.Equal(t, "points-b", string(archived))
	assert.FileExists(t, filepath.Join(root, convert.ArchiveName, "a.laz"))
}

func TestConvertCmd_Destroy(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{"a.laz": "points"})

	out, err := run(t, "YES\n", "convert", "--destroy", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Are you sure you want to destroy 1 LAZ files")
	assert.FileExists(t, filepath.Join(root, "a.las"))
	assert.NoFileExists(t, filepath.Join(root, "a.laz"))
	assert.NoDirExists(t, filepath.Join(root, convert.ArchiveName))
}

func TestConvertCmd_Declined(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{"a.laz": "points"})

	for _, answer := range []string{"no\n", "y\n", ""} {
		out, err := run(t, answer, "convert", root)
		require.ErrorIs(t, err, convert.ErrAborted)
		assert.Equal(t, ExitAborted, ExitCode(err))
		assert.Contains(t, out, "Aborted.")
	}

	assert.FileExists(t, filepath.Join(root, "a.laz"))
	assert.NoFileExists(t, filepath.Join(root, "a.las"))
	assert.NoDirExists(t, filepath.Join(root, convert.ArchiveName))
}

func TestConvertCmd_PartialFailure(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{
		"good.laz": "points",
		"bad.laz":  "corrupt data",
	})

	out, err := run(t, "yes\n", "convert", root)
	require.ErrorIs(t, err, convert.ErrPartialFailure)
	assert.Equal(t, ExitIncomplete, ExitCode(err))
	assert.Contains(t, out, "Failed")

	assert.FileExists(t, filepath.Join(root, "bad.laz"))
	assert.NoFileExists(t, filepath.Join(root, "bad.las"))
	assert.FileExists(t, filepath.Join(root, "good.las"))
	assert.FileExists(t, filepath.Join(root, convert.ArchiveName, "good.laz"))
}

func TestConvertCmd_NoFiles(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{"readme.md": "x"})

	out, err := run(t, "", "convert", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No LAZ files found.")
	assert.NotContains(t, out, "Are you sure")
}

func TestConvertCmd_MissingFolder(t *testing.T) {
	fakeLaszip(t)

	_, err := run(t, "yes\n", "convert", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, util.ErrDiscovery)
	assert.Equal(t, ExitError, ExitCode(err))
}

func TestConvertCmd_DryRun(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{"a.laz": "points"})

	_, err := run(t, "", "convert", "--dry-run", root)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "a.laz"))
	assert.NoFileExists(t, filepath.Join(root, "a.las"))
}

func TestConvertCmd_BadArgs(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{"a.laz": "points"})

	_, err := run(t, "", "convert")
	assert.Error(t, err)

	_, err = run(t, "", "convert", root, "extra")
	assert.Error(t, err)

	_, err = run(t, "yes\n", "convert", "--layout", "sideways", root)
	assert.Error(t, err)
	assert.Equal(t, ExitError, ExitCode(err))
	assert.FileExists(t, filepath.Join(root, "a.laz"))
}

func TestDispatchCmd_Local(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{
		"a.laz":     "points-a",
		"x/y/c.laz": "points-c",
		"bad.laz":   "corrupt",
	})

	out, err := run(t, "yes\n", "dispatch", "--local", root)
	require.ErrorIs(t, err, convert.ErrPartialFailure)
	assert.Contains(t, out, "Are you sure you want to move 3 LAZ files")

	assert.FileExists(t, filepath.Join(root, "a.las"))
	assert.FileExists(t, filepath.Join(root, "x", "y", "c.las"))
	assert.FileExists(t, filepath.Join(root, convert.ParallelArchiveName, "a.laz"))
	assert.FileExists(t, filepath.Join(root, convert.ParallelArchiveName, "c.laz"))
	assert.FileExists(t, filepath.Join(root, "bad.laz"))
}

func TestDispatchCmd_PoolUnreachable(t *testing.T) {
	fakeLaszip(t)
	t.Setenv("REDIS_HOST", "127.0.0.1")
	t.Setenv("REDIS_PORT", "1")
	root := writeTree(t, map[string]string{"a.laz": "points"})

	out, err := run(t, "yes\n", "dispatch", root)
	require.ErrorIs(t, err, convert.ErrPoolUnreachable)
	assert.Equal(t, ExitPrecheck, ExitCode(err))
	assert.NotContains(t, out, "Found")
	assert.FileExists(t, filepath.Join(root, "a.laz"))
}

func TestCountCmd(t *testing.T) {
	fakeLaszip(t)
	root := writeTree(t, map[string]string{
		"a.laz":               "x",
		"b.laz":               "x",
		"north/c.laz":         "x",
		"LAZ/old.laz":         "x",
		"north/LAZ_old/d.laz": "x",
		"north/other.las":     "x",
	})

	out, err := run(t, "", "count", root)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Found 4 LAZ files in %s.", root))
	assert.Contains(t, out, filepath.Join(root, "north", "LAZ_old"))
	assert.NotContains(t, out, filepath.Join(root, "LAZ")+"\n")
	assert.Contains(t, out, fmt.Sprintf("     2  %s\n", root))

	out, err = run(t, "", "count", "--all", root)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Found 5 LAZ files in %s.", root))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"aborted", convert.ErrAborted, ExitAborted},
		{"no permission", fmt.Errorf("%w: /data", convert.ErrNoPermission), ExitPrecheck},
		{"pool", fmt.Errorf("%w: dial tcp", convert.ErrPoolUnreachable), ExitPrecheck},
		{"partial", errors.Join(fmt.Errorf("1 of 3: %w", convert.ErrPartialFailure), errors.New("decode a.laz")), ExitIncomplete},
		{"other", errors.New("boom"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
