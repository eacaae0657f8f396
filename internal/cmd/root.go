package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/meigma/zipdir"
)

const (
	groupArchive  = "archive"
	groupRegistry = "registry"
)

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	verbose bool
}

// logger returns a text logger on the command's stderr.
// Progress and skipped entries are only visible with --verbose.
func (g *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// NewRootCmd creates the root zipdir command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "zipdir",
		Short: "zipdir - Archive directory trees as zip files",
		Long: `zipdir archives every file and directory below a root into a zip archive.

Entries are named relative to the root, so the root's own name never appears
in the archive. Symbolic links and special files are skipped. Archives can be
written to disk or pushed to an OCI registry as a single-layer artifact.`,
		Version:      Version(),
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&g.verbose, "verbose", false, "Log every entry and skipped file")

	rootCmd.AddGroup(&cobra.Group{ID: groupArchive, Title: "Archive Commands"})
	rootCmd.AddGroup(&cobra.Group{ID: groupRegistry, Title: "Registry Commands"})

	createCmd := newCreateCmd(g)
	pushCmd := newPushCmd(g)
	versionCmd := newVersionCmd()

	createCmd.GroupID = groupArchive
	pushCmd.GroupID = groupRegistry

	rootCmd.AddCommand(createCmd, pushCmd, versionCmd)
	return rootCmd
}

// compressionFlags registers the entry compression flags shared by create and push.
type compressionFlags struct {
	method string
	level  int
}

func (f *compressionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.method, "compression", "store", "Entry compression: store, deflate or zstd")
	cmd.Flags().IntVar(&f.level, "level", 0, "Compression level (0 selects the codec default)")
}

func (f *compressionFlags) fileOptions() (zipdir.FileOptions, error) {
	c, err := zipdir.ParseCompression(f.method)
	if err != nil {
		return zipdir.FileOptions{}, err
	}
	return zipdir.FileOptions{Compression: c, Level: f.level}, nil
}

// logProgress logs each written entry at debug level.
func logProgress(logger *slog.Logger) zipdir.ProgressFunc {
	return func(ev zipdir.ProgressEvent) {
		if ev.Stage != zipdir.StageWriting {
			return
		}
		logger.Debug("entry written", "entry", ev.Path, "files", ev.Files, "bytes", ev.Bytes)
	}
}
