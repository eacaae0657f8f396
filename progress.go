package zipdir

// ProgressEvent represents a progress update during archive creation.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the entry name being processed. Empty for the root
	// directory and for StageFinalizing.
	Path string

	// Directories is the number of directory entries written so far.
	Directories int

	// Files is the number of file entries written so far.
	Files int

	// Skipped is the number of unsupported entries (symlinks, devices,
	// sockets, pipes) left out so far.
	Skipped int

	// Bytes is the total uncompressed file content written so far.
	Bytes uint64
}

// ProgressStage identifies the current phase of archive creation.
type ProgressStage uint8

const (
	// StageEnumerating indicates a directory is being listed.
	StageEnumerating ProgressStage = iota

	// StageWriting indicates an entry was written to the sink.
	StageWriting

	// StageFinalizing indicates the sink is being finished.
	StageFinalizing
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageEnumerating:
		return "enumerating"
	case StageWriting:
		return "writing"
	case StageFinalizing:
		return "finalizing"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during archive creation.
type ProgressFunc func(ProgressEvent)
