package zipdir

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/zipdir/internal/testutil"
)

func TestCreateFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.CreateTree(t, dir, map[string]string{
		"file1.txt":     "hello",
		"sub/file2.txt": "world",
	})
	out := filepath.Join(t.TempDir(), "out.zip")

	require.NoError(t, CreateFile(out, dir))

	entries := testutil.ReadZipFile(t, out)
	assert.Equal(t, testutil.TreeContents(t, dir), testutil.ZipContents(entries))
}

func TestCreateFileWithOptions(t *testing.T) {
	t.Parallel()

	for _, c := range []Compression{CompressionStore, CompressionDeflate, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			testutil.CreateTree(t, dir, map[string]string{
				"a.txt":       "alpha alpha alpha",
				"nested/b.md": "# bravo",
			})
			out := filepath.Join(t.TempDir(), "out.zip")

			require.NoError(t, CreateFileWithOptions(out, dir, FileOptions{Compression: c}))

			entries := testutil.ReadZipFile(t, out)
			assert.Equal(t, testutil.TreeContents(t, dir), testutil.ZipContents(entries))
		})
	}
}

func TestCreateFileOutputInsideSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.CreateTree(t, dir, map[string]string{
		"a.txt":       "a",
		"sub/b.txt":   "b",
		"sub/old.zip": "not the archive",
	})
	expected := testutil.TreeContents(t, dir)
	out := filepath.Join(dir, "sub", "archive.zip")

	require.NoError(t, CreateFile(out, dir))

	entries := testutil.ReadZipFile(t, out)
	assert.Equal(t, expected, testutil.ZipContents(entries))
}

func TestCreateFileOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.CreateTree(t, dir, map[string]string{"a.txt": "a"})
	out := filepath.Join(t.TempDir(), "out.zip")
	require.NoError(t, os.WriteFile(out, []byte("stale content that is not a zip"), 0o644))

	require.NoError(t, CreateFile(out, dir))

	entries := testutil.ReadZipFile(t, out)
	assert.Equal(t, map[string]string{"a.txt": "a"}, testutil.ZipContents(entries))
}

func TestCreateFileMissingSource(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out.zip")
	err := CreateFile(out, filepath.Join(t.TempDir(), "missing"))

	var fsErr *FSError
	require.ErrorAs(t, err, &fsErr)
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, statErr := os.Stat(out)
	require.ErrorIs(t, statErr, fs.ErrNotExist, "no output is created for a missing source")
}

func TestCreateFileInvalidOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out.zip")
	err := CreateFileWithOptions(out, dir, FileOptions{Compression: CompressionDeflate, Level: 42})
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, statErr := os.Stat(out)
	require.ErrorIs(t, statErr, fs.ErrNotExist)
}

func TestCreateFileUnwritableOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "out.zip")

	err := CreateFile(out, dir)

	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "create output", sinkErr.Op)
	assert.Equal(t, out, sinkErr.Name)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWithOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.CreateTree(t, dir, map[string]string{"a.txt": "a"})
	out, err := os.Create(filepath.Join(dir, "out.zip"))
	require.NoError(t, err)
	defer out.Close()
	info, err := out.Stat()
	require.NoError(t, err)

	sink := &recordingSink{}
	require.NoError(t, CreateFromDirectory(sink, dir, WithOutputFile(info)))
	assert.Equal(t, []sinkCall{
		{Op: "file", Name: "a.txt", Data: "a"},
		{Op: "finish"},
	}, sink.calls)
}
