package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/zipdir"
)

// newCreateCmd creates the create subcommand, which writes an archive to disk.
func newCreateCmd(g *globalOptions) *cobra.Command {
	var flags compressionFlags

	cmd := &cobra.Command{
		Use:   "create DIR ARCHIVE",
		Short: "Archive a directory into a zip file",
		Long: `Archive every file and directory below DIR into the zip file ARCHIVE.

ARCHIVE is created or truncated. If it lies inside DIR it is left out of the
archive. Entries are stored uncompressed unless --compression is given.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileOpts, err := flags.fileOptions()
			if err != nil {
				return err
			}
			logger := g.logger(cmd)

			dir, archive := args[0], args[1]
			if err := zipdir.CreateFileWithOptions(archive, dir, fileOpts,
				zipdir.WithLogger(logger),
				zipdir.WithProgress(logProgress(logger)),
			); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", archive)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
