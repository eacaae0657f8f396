//go:build !unix

package platform

import (
	"io/fs"
	"os"
)

// OpenNoFollow opens name below root for reading without following a final
// symlink. Returns ErrSymlink if name is a symbolic link.
func OpenNoFollow(root *os.Root, name string) (*os.File, error) {
	info, err := root.Lstat(name)
	if err != nil {
		return nil, err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil, ErrSymlink
	}
	return root.Open(name)
}
