package zipdir

import (
	"fmt"
	"io/fs"
	"log/slog"
)

// Compression identifies the compression method applied to file entries.
type Compression uint8

const (
	// CompressionStore writes entries uncompressed.
	CompressionStore Compression = iota
	// CompressionDeflate compresses entries with deflate (zip method 8).
	CompressionDeflate
	// CompressionZstd compresses entries with zstd (zip method 93).
	CompressionZstd
)

// String returns the human-readable name of the compression method.
func (c Compression) String() string {
	switch c {
	case CompressionStore:
		return "store"
	case CompressionDeflate:
		return "deflate"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseCompression returns the Compression named by s.
// "none" and "stored" are accepted as aliases of "store".
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "store", "stored", "none":
		return CompressionStore, nil
	case "deflate":
		return CompressionDeflate, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("%w: unknown compression %q", ErrInvalidOptions, s)
	}
}

// Level bounds accepted by FileOptions.Level.
const (
	MinDeflateLevel = -2
	MaxDeflateLevel = 9
	MinZstdLevel    = 1
	MaxZstdLevel    = 22
)

// FileOptions is applied uniformly to every entry written in one archiving run.
type FileOptions struct {
	// Compression is the method used for file entries. Directory entries
	// are always stored.
	Compression Compression

	// Level is the codec-specific compression level. Zero selects the
	// codec default. Ignored for CompressionStore.
	Level int
}

// DefaultFileOptions returns options that store entries uncompressed.
func DefaultFileOptions() FileOptions {
	return FileOptions{Compression: CompressionStore}
}

func (o FileOptions) validate() error {
	switch o.Compression {
	case CompressionStore:
		return nil
	case CompressionDeflate:
		if o.Level != 0 && (o.Level < MinDeflateLevel || o.Level > MaxDeflateLevel) {
			return fmt.Errorf("%w: deflate level %d out of range [%d, %d]", ErrInvalidOptions, o.Level, MinDeflateLevel, MaxDeflateLevel)
		}
		return nil
	case CompressionZstd:
		if o.Level != 0 && (o.Level < MinZstdLevel || o.Level > MaxZstdLevel) {
			return fmt.Errorf("%w: zstd level %d out of range [%d, %d]", ErrInvalidOptions, o.Level, MinZstdLevel, MaxZstdLevel)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown compression %d", ErrInvalidOptions, o.Compression)
	}
}

// createConfig holds the ambient configuration of one archiving run.
type createConfig struct {
	logger   *slog.Logger
	progress ProgressFunc

	// exclude is the archive file being written, which may live inside
	// the source tree.
	exclude fs.FileInfo
}

// Option configures archive creation.
type Option func(*createConfig)

// WithLogger sets the logger used during archive creation.
// Without it, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *createConfig) {
		cfg.logger = logger
	}
}

// WithProgress sets a callback that receives progress events.
// The callback runs synchronously on the archiving goroutine.
func WithProgress(fn ProgressFunc) Option {
	return func(cfg *createConfig) {
		cfg.progress = fn
	}
}

// WithOutputFile marks info as the file the archive is being written to.
// If that file lies inside the archived tree it is left out of the archive.
// CreateFile sets this automatically.
func WithOutputFile(info fs.FileInfo) Option {
	return func(cfg *createConfig) {
		cfg.exclude = info
	}
}
