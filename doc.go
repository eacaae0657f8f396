// Package zipdir packages a directory tree into a single zip archive.
//
// The archiver walks the tree with an explicit stack of pending directories,
// names every entry by its slash-separated path relative to the root, and
// writes file and directory entries to a [Sink] in one pass. Each file is
// staged in a single reused buffer, so memory use is bounded by the largest
// file rather than the size of the tree.
//
// # Quick Start
//
// Archive a directory into a file:
//
//	err := zipdir.CreateFile("site.zip", "./public")
//
// Archive into any writer with deflate compression:
//
//	sink := zipdir.NewZipSink(w)
//	err := zipdir.CreateFromDirectoryWithOptions(sink, "./public",
//	    zipdir.FileOptions{Compression: zipdir.CompressionDeflate},
//	    zipdir.WithLogger(logger),
//	)
//
// # Entries
//
// Only regular files and directories are archived. Symbolic links, devices,
// sockets and pipes are skipped and reported at debug level. Permissions,
// ownership and timestamps are not recorded.
//
// # Errors
//
// Archiving stops at the first failure. Failures reading the source tree are
// reported as [*FSError] and failures writing the archive as [*SinkError];
// both wrap the underlying cause.
package zipdir
