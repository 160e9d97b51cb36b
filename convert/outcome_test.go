package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummary(t *testing.T) {
	decodeErr := errors.New("decode c.laz: bad header")
	s := Summary{
		Root:  "/data",
		Found: 4,
		Outcomes: []Outcome{
			{Source: "/data/a.laz", Disposition: DispositionMoved},
			{Source: "/data/b.laz", Disposition: DispositionDuplicate},
			{Source: "/data/c.laz", Stage: StageConvert, Err: decodeErr},
			{Source: "/data/d.laz", Disposition: DispositionMoved},
		},
	}

	assert.Equal(t, 2, s.Count(DispositionMoved))
	assert.Equal(t, 1, s.Count(DispositionDuplicate))
	assert.Equal(t, 0, s.Count(DispositionDeleted))
	assert.Len(t, s.Failures(), 1)

	err := s.Err()
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, decodeErr)
	assert.Contains(t, err.Error(), "1 of 4")

	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "Converted: 3")
	assert.Contains(t, out, "Archived: 2")
	assert.Contains(t, out, "Deleted (already archived): 1")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "/data/c.laz (convert): decode c.laz: bad header")
}

func TestSummary_NoFailures(t *testing.T) {
	s := Summary{Outcomes: []Outcome{{Source: "/data/a.laz", Disposition: DispositionDeleted}}}
	assert.NoError(t, s.Err())

	var buf bytes.Buffer
	s.Print(&buf)
	assert.Contains(t, buf.String(), "Deleted: 1")
	assert.NotContains(t, buf.String(), "Failed")
}

func TestPrintDiscovery(t *testing.T) {
	var buf bytes.Buffer
	files := []string{
		filepath.Join("/data", "a.laz"),
		filepath.Join("/data", "b.laz"),
		filepath.Join("/data", "sub", "c.laz"),
	}
	PrintDiscovery(&buf, "/data", files)

	assert.Equal(t, "     2  /data\n     1  /data/sub\nFound 3 LAZ files in /data.\n", buf.String())
}

func TestFolderColorIsStable(t *testing.T) {
	assert.Equal(t, folderColor("/data/sub").Sprint("x"), folderColor("/data/sub").Sprint("x"))
}

func TestCheckWritable(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, CheckWritable(dir))

	err := CheckWritable(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrNoPermission)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
