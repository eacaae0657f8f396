package zipdir

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/meigma/zipdir/internal/pathutil"
	"github.com/meigma/zipdir/internal/platform"
)

// Sink receives the entries of one archive from a single sequential caller.
//
// Entry names are slash-separated and relative to the archived root.
// Directory names carry no trailing slash; a sink that needs one adds it.
type Sink interface {
	// CreateFile begins a file entry. Subsequent Writes go to this entry.
	CreateFile(name string, opts FileOptions) error

	// CreateDirectory adds a directory entry.
	CreateDirectory(name string, opts FileOptions) error

	// Write appends p to the most recently created file entry.
	Write(p []byte) (int, error)

	// Finish completes the archive. It is called exactly once.
	Finish() error
}

// errUnsupported marks an entry that changed into something other than a
// regular file between listing and open.
var errUnsupported = errors.New("unsupported entry type")

// CreateFromDirectory writes every file and directory below dir to sink,
// storing file contents uncompressed, then finishes the sink.
func CreateFromDirectory(sink Sink, dir string, opts ...Option) error {
	return CreateFromDirectoryWithOptions(sink, dir, DefaultFileOptions(), opts...)
}

// CreateFromDirectoryWithOptions writes every file and directory below dir
// to sink, applying fileOpts to each entry, then finishes the sink.
//
// Entries are named by their slash-separated path relative to dir. Entry
// order is unspecified. Symbolic links, devices, sockets and pipes are
// skipped. Each file is read fully into one reused buffer before its entry
// is created, so memory use is bounded by the largest file.
//
// The first error aborts the run: filesystem failures are returned as
// *FSError, sink failures as *SinkError. A dir that cannot be stat'ed as a
// directory fails before any sink operation. Nothing written to the sink
// before a failure is undone.
func CreateFromDirectoryWithOptions(sink Sink, dir string, fileOpts FileOptions, opts ...Option) error {
	cfg := createConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := fileOpts.validate(); err != nil {
		return err
	}

	root, err := resolveRoot(dir)
	if err != nil {
		return err
	}
	fsroot, err := os.OpenRoot(root)
	if err != nil {
		return fsError("open", root, err)
	}
	defer fsroot.Close()

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &archiver{
		sink:     sink,
		root:     root,
		fsroot:   fsroot,
		fileOpts: fileOpts,
		cfg:      cfg,
		logger:   logger,
	}
	a.logger.Info("creating archive", "dir", root, "compression", fileOpts.Compression.String())

	if err := a.walk(); err != nil {
		return err
	}

	a.reportProgress(StageFinalizing, "")
	if err := sink.Finish(); err != nil {
		return &SinkError{Op: "finish", Err: err}
	}

	a.logger.Info("archive created",
		"directories", a.dirs, "files", a.files, "skipped", a.skipped, "bytes", a.bytes)
	return nil
}

// resolveRoot returns dir as an absolute path after checking it is a directory.
func resolveRoot(dir string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", fsError("resolve", dir, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fsError("stat", root, err)
	}
	if !info.IsDir() {
		return "", fsError("stat", root, ErrNotDirectory)
	}
	return root, nil
}

// archiver holds the state of one archiving run.
//
// Every directory listing and file open goes through fsroot, so a path
// component swapped for a symlink after listing cannot lead outside root.
type archiver struct {
	sink     Sink
	root     string
	fsroot   *os.Root
	fileOpts FileOptions
	cfg      createConfig
	logger   *slog.Logger

	// buf stages one file's contents at a time.
	buf bytes.Buffer

	dirs, files, skipped int
	bytes                uint64
}

// walk expands directories from an explicit stack until none are pending.
func (a *archiver) walk() error {
	pending := []string{a.root}
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if a.cfg.progress != nil {
			a.reportProgress(StageEnumerating, a.displayName(dir))
		}
		children, err := a.listDir(dir)
		if err != nil {
			switch {
			case errors.Is(err, platform.ErrSymlink):
				a.skip(dir, fs.ModeSymlink)
				continue
			case errors.Is(err, errUnsupported):
				a.skip(dir, fs.ModeIrregular)
				continue
			}
			return err
		}

		for _, d := range children {
			path := filepath.Join(dir, d.Name())
			switch t := d.Type(); {
			case t.IsDir():
				if err := a.addDirectory(path); err != nil {
					return err
				}
				pending = append(pending, path)
			case t.IsRegular():
				if err := a.addFile(path, d); err != nil {
					return err
				}
			default:
				a.skip(path, t)
			}
		}
	}
	return nil
}

// listDir returns the children of dir sorted by name. A directory replaced
// by a symlink or another kind of entry since it was listed is reported as
// platform.ErrSymlink or errUnsupported.
func (a *archiver) listDir(dir string) ([]fs.DirEntry, error) {
	name, err := a.rootName(dir)
	if err != nil {
		return nil, err
	}
	f, err := platform.OpenNoFollow(a.fsroot, name)
	if err != nil {
		if errors.Is(err, platform.ErrSymlink) {
			return nil, err
		}
		return nil, fsError("readdir", dir, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fsError("stat", dir, err)
	}
	if !info.IsDir() {
		return nil, errUnsupported
	}

	children, err := f.ReadDir(-1)
	if err != nil {
		return nil, fsError("readdir", dir, err)
	}
	slices.SortFunc(children, func(x, y fs.DirEntry) int {
		return strings.Compare(x.Name(), y.Name())
	})
	return children, nil
}

func (a *archiver) addDirectory(path string) error {
	name, err := a.entryName(path)
	if err != nil {
		return err
	}
	if err := a.sink.CreateDirectory(name, a.fileOpts); err != nil {
		return &SinkError{Op: "create directory", Name: name, Err: err}
	}
	a.dirs++
	a.reportProgress(StageWriting, name)
	return nil
}

func (a *archiver) addFile(path string, d fs.DirEntry) error {
	if a.excluded(d) {
		a.logger.Debug("skipped archive output", "path", path)
		return nil
	}

	name, err := a.entryName(path)
	if err != nil {
		return err
	}

	defer a.buf.Reset()
	if err := a.readFile(path); err != nil {
		switch {
		case errors.Is(err, platform.ErrSymlink):
			a.skip(path, fs.ModeSymlink)
			return nil
		case errors.Is(err, errUnsupported):
			a.skip(path, fs.ModeIrregular)
			return nil
		}
		return err
	}

	if err := a.sink.CreateFile(name, a.fileOpts); err != nil {
		return &SinkError{Op: "create file", Name: name, Err: err}
	}
	if _, err := a.sink.Write(a.buf.Bytes()); err != nil {
		return &SinkError{Op: "write", Name: name, Err: err}
	}

	a.files++
	a.bytes += uint64(a.buf.Len()) //nolint:gosec // buffer length is non-negative
	a.reportProgress(StageWriting, name)
	return nil
}

// readFile reads the file at path into the scratch buffer.
// The file is closed before readFile returns.
func (a *archiver) readFile(path string) error {
	name, err := a.rootName(path)
	if err != nil {
		return err
	}
	f, err := platform.OpenNoFollow(a.fsroot, name)
	if err != nil {
		if errors.Is(err, platform.ErrSymlink) {
			return err
		}
		return fsError("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fsError("stat", path, err)
	}
	if !info.Mode().IsRegular() {
		return errUnsupported
	}

	if _, err := a.buf.ReadFrom(f); err != nil {
		return fsError("read", path, err)
	}
	return nil
}

func (a *archiver) entryName(path string) (string, error) {
	name, err := pathutil.Rel(a.root, path)
	if err != nil {
		return "", fsError("relativize", path, err)
	}
	return name, nil
}

// rootName returns path in the form accepted by fsroot. The root itself is ".".
func (a *archiver) rootName(path string) (string, error) {
	if path == a.root {
		return ".", nil
	}
	name, err := a.entryName(path)
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(name), nil
}

// displayName returns the entry name of a pending directory, or "" for the root.
func (a *archiver) displayName(dir string) string {
	if dir == a.root {
		return ""
	}
	name, err := pathutil.Rel(a.root, dir)
	if err != nil {
		return dir
	}
	return name
}

// excluded reports whether d is the archive file currently being written.
func (a *archiver) excluded(d fs.DirEntry) bool {
	if a.cfg.exclude == nil {
		return false
	}
	info, err := d.Info()
	if err != nil {
		return false
	}
	return os.SameFile(info, a.cfg.exclude)
}

func (a *archiver) skip(path string, mode fs.FileMode) {
	a.skipped++
	a.logger.Debug("skipped unsupported entry", "path", path, "type", mode.Type().String())
}

// reportProgress sends a progress event if a callback is configured.
func (a *archiver) reportProgress(stage ProgressStage, name string) {
	if a.cfg.progress == nil {
		return
	}
	a.cfg.progress(ProgressEvent{
		Stage:       stage,
		Path:        name,
		Directories: a.dirs,
		Files:       a.files,
		Skipped:     a.skipped,
		Bytes:       a.bytes,
	})
}

// fsError builds an FSError, dropping a redundant *fs.PathError layer.
func fsError(op, path string, err error) *FSError {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return &FSError{Op: op, Path: path, Err: err}
}
