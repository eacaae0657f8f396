// Package platform holds the OS-specific pieces of reading source files.
package platform

import "errors"

// ErrSymlink is returned when the path being opened is a symbolic link.
var ErrSymlink = errors.New("symbolic link")
