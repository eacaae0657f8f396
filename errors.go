package zipdir

import (
	"errors"
	"fmt"
)

// Sentinel errors for package zipdir.
var (
	// ErrNotDirectory is returned when the source root is not a directory.
	ErrNotDirectory = errors.New("zipdir: not a directory")

	// ErrInvalidOptions is returned when FileOptions cannot be applied.
	ErrInvalidOptions = errors.New("zipdir: invalid options")

	// ErrNoEntry is returned when bytes are written to a sink with no open file entry.
	ErrNoEntry = errors.New("zipdir: no open file entry")

	// ErrFinished is returned when a sink is used after Finish.
	ErrFinished = errors.New("zipdir: archive already finished")
)

// FSError reports a failure reading the source tree.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("zipdir: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error { return e.Err }

// SinkError reports a failure writing to the archive sink.
// Name is the entry being written, empty for archive-level operations.
type SinkError struct {
	Op   string
	Name string
	Err  error
}

func (e *SinkError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("zipdir: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("zipdir: %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }
