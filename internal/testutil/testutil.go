// Package testutil provides fixtures shared by tests across packages.
package testutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// CreateTree writes files below dir. Keys are slash-separated relative
// paths; a key ending in "/" creates an empty directory.
func CreateTree(tb testing.TB, dir string, files map[string]string) {
	tb.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			require.NoError(tb, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(tb, os.WriteFile(path, []byte(content), 0o644))
	}
}

// ZipEntry is one entry read back from an archive.
type ZipEntry struct {
	Name    string
	Method  uint16
	Content string
}

// ReadZip parses a zip archive and returns its entries in archive order.
// Zstd entries are decoded with the zstd zip decompressor.
func ReadZip(tb testing.TB, data []byte) []ZipEntry {
	tb.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(tb, err)
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	entries := make([]ZipEntry, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(tb, err, "open entry %q", f.Name)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(tb, err, "read entry %q", f.Name)
		entries = append(entries, ZipEntry{Name: f.Name, Method: f.Method, Content: string(content)})
	}
	return entries
}

// ReadZipFile is ReadZip for an archive stored at path.
func ReadZipFile(tb testing.TB, path string) []ZipEntry {
	tb.Helper()
	data, err := os.ReadFile(path)
	require.NoError(tb, err)
	return ReadZip(tb, data)
}

// ZipContents maps entry names to contents. Directory entries keep their
// trailing "/" and map to "".
func ZipContents(entries []ZipEntry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Name] = e.Content
	}
	return m
}

// TreeContents walks dir and returns the archive view of it: relative
// slash-separated names, "/" suffixed directories, regular file contents.
func TreeContents(tb testing.TB, dir string) map[string]string {
	tb.Helper()
	m := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == dir {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		switch {
		case d.IsDir():
			m[name+"/"] = ""
		case d.Type().IsRegular():
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			m[name] = string(data)
		}
		return nil
	})
	require.NoError(tb, err)
	return m
}
