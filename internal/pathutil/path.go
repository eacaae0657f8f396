// Package pathutil maps filesystem paths to slash-separated archive entry names.
package pathutil

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a path is not strictly below the root.
var ErrOutsideRoot = errors.New("path is not below root")

// Rel returns descendant relative to root as a slash-separated entry name.
//
// Both paths must be clean and of the same kind (both absolute or both
// relative). The root itself and anything that escapes it are rejected with
// ErrOutsideRoot; callers only ever pass paths listed under root.
func Rel(root, descendant string) (string, error) {
	rel, err := filepath.Rel(root, descendant)
	if err != nil {
		return "", err
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return filepath.ToSlash(rel), nil
}

// DirName converts an entry name to its directory entry form.
// The result ends in exactly one "/".
func DirName(name string) string {
	return strings.TrimRight(name, "/") + "/"
}
