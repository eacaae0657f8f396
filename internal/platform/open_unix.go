//go:build unix

package platform

import (
	"errors"
	"os"
	"syscall"
)

// OpenNoFollow opens name below root for reading without following a final
// symlink. Returns ErrSymlink if name is a symbolic link.
//
// The open never blocks on a FIFO or device; callers check the returned
// file's mode before reading.
func OpenNoFollow(root *os.Root, name string) (*os.File, error) {
	f, err := root.OpenFile(name, os.O_RDONLY|syscall.O_NOFOLLOW|syscall.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, syscall.ELOOP) {
			return nil, ErrSymlink
		}
		return nil, err
	}
	return f, nil
}
