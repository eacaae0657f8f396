package zipdir

import (
	"os"
)

// CreateFile writes a zip archive of dir to archivePath, storing file
// contents uncompressed.
func CreateFile(archivePath, dir string, opts ...Option) error {
	return CreateFileWithOptions(archivePath, dir, DefaultFileOptions(), opts...)
}

// CreateFileWithOptions writes a zip archive of dir to archivePath,
// applying fileOpts to every entry.
//
// archivePath is created or truncated only after dir has been checked, so a
// missing source leaves no output behind. If archivePath lies inside dir it
// is left out of the archive. On failure the partially written output is
// kept; callers decide whether to remove it.
func CreateFileWithOptions(archivePath, dir string, fileOpts FileOptions, opts ...Option) (err error) {
	if err := fileOpts.validate(); err != nil {
		return err
	}
	if _, err := resolveRoot(dir); err != nil {
		return err
	}

	f, err := os.Create(archivePath) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return &SinkError{Op: "create output", Name: archivePath, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = &SinkError{Op: "close output", Name: archivePath, Err: closeErr}
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return &SinkError{Op: "stat output", Name: archivePath, Err: err}
	}
	opts = append(opts[:len(opts):len(opts)], WithOutputFile(info))

	return CreateFromDirectoryWithOptions(NewZipSink(f), dir, fileOpts, opts...)
}
