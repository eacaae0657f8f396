package zipdir

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"

	"github.com/meigma/zipdir/internal/pathutil"
)

// ZipMethodZstd is the zip compression method ID written for zstd entries.
// Readers must register zstd.ZipDecompressor under this ID.
const ZipMethodZstd = zstd.ZipMethodWinZip

// ZipSink is a Sink that writes a zip archive to an io.Writer.
//
// Entry headers carry no timestamps or permissions, so archiving the same
// tree twice with the same options yields identical bytes. Finish writes the
// central directory but does not close the underlying writer.
type ZipSink struct {
	zw       *zip.Writer
	entry    io.Writer
	levels   map[uint16]int
	finished bool
}

// NewZipSink returns a ZipSink writing to w.
func NewZipSink(w io.Writer) *ZipSink {
	return &ZipSink{
		zw:     zip.NewWriter(w),
		levels: make(map[uint16]int, 2),
	}
}

// CreateFile begins a file entry compressed according to opts.
func (s *ZipSink) CreateFile(name string, opts FileOptions) error {
	if s.finished {
		return ErrFinished
	}
	s.entry = nil
	method, err := s.method(opts)
	if err != nil {
		return err
	}
	w, err := s.zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return err
	}
	s.entry = w
	return nil
}

// CreateDirectory adds a directory entry. Directory entries are always stored.
func (s *ZipSink) CreateDirectory(name string, _ FileOptions) error {
	if s.finished {
		return ErrFinished
	}
	s.entry = nil
	_, err := s.zw.CreateHeader(&zip.FileHeader{Name: pathutil.DirName(name), Method: zip.Store})
	return err
}

// Write appends p to the current file entry.
func (s *ZipSink) Write(p []byte) (int, error) {
	if s.finished {
		return 0, ErrFinished
	}
	if s.entry == nil {
		return 0, ErrNoEntry
	}
	return s.entry.Write(p)
}

// Finish flushes the last entry and writes the central directory.
func (s *ZipSink) Finish() error {
	if s.finished {
		return ErrFinished
	}
	s.finished = true
	s.entry = nil
	return s.zw.Close()
}

// method returns the zip method for opts, registering a compressor when the
// requested level differs from the one registered for that method.
func (s *ZipSink) method(opts FileOptions) (uint16, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}

	var method uint16
	switch opts.Compression {
	case CompressionDeflate:
		method = zip.Deflate
	case CompressionZstd:
		method = ZipMethodZstd
	default:
		return zip.Store, nil
	}

	if level, ok := s.levels[method]; !ok || level != opts.Level {
		s.zw.RegisterCompressor(method, compressor(opts))
		s.levels[method] = opts.Level
	}
	return method, nil
}

func compressor(opts FileOptions) zip.Compressor {
	if opts.Compression == CompressionZstd {
		level := zstd.SpeedDefault
		if opts.Level != 0 {
			level = zstd.EncoderLevelFromZstd(opts.Level)
		}
		return zstd.ZipCompressor(zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	}

	level := opts.Level
	if level == 0 {
		level = flate.DefaultCompression
	}
	return func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	}
}
