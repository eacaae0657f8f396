package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	orasregistry "oras.land/oras-go/v2/registry"

	"github.com/meigma/zipdir"
	"github.com/meigma/zipdir/registry"
)

// newPushCmd creates the push subcommand, which archives a directory and
// pushes it to an OCI registry.
func newPushCmd(g *globalOptions) *cobra.Command {
	var (
		flags       compressionFlags
		plainHTTP   bool
		anonymous   bool
		username    string
		password    string
		title       string
		tags        []string
		annotations map[string]string
	)

	cmd := &cobra.Command{
		Use:   "push DIR REF",
		Short: "Archive a directory and push it to an OCI registry",
		Long: `Archive every file and directory below DIR and push the zip archive to REF
as a single-layer OCI artifact.

REF must include a tag, e.g. registry.example.com/team/site:v1. Credentials
come from --username/--password if given, otherwise from the Docker config.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileOpts, err := flags.fileOptions()
			if err != nil {
				return err
			}
			logger := g.logger(cmd)
			dir, ref := args[0], args[1]

			clientOpts := []registry.Option{
				registry.WithPlainHTTP(plainHTTP),
				registry.WithUserAgent("zipdir/" + Version()),
				registry.WithLogger(logger),
			}
			switch {
			case anonymous:
				clientOpts = append(clientOpts, registry.WithAnonymous())
			case username != "":
				host, err := registryHost(ref)
				if err != nil {
					return err
				}
				clientOpts = append(clientOpts, registry.WithStaticCredentials(host, username, password))
			default:
				clientOpts = append(clientOpts, registry.WithDockerConfig())
			}

			pushOpts := []registry.PushOption{
				registry.WithFileOptions(fileOpts),
				registry.WithCreateOptions(zipdir.WithProgress(logProgress(logger))),
				registry.WithTags(tags...),
			}
			if title != "" {
				pushOpts = append(pushOpts, registry.WithTitle(title))
			}
			if len(annotations) > 0 {
				pushOpts = append(pushOpts, registry.WithAnnotations(annotations))
			}

			desc, err := registry.New(clientOpts...).Push(cmd.Context(), ref, dir, pushOpts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %s@%s\n", ref, desc.Digest)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&plainHTTP, "plain-http", false, "Use plain HTTP instead of HTTPS")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Push without credentials")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Registry username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Registry password")
	cmd.Flags().StringVar(&title, "title", "", "Layer title (default DIR's base name with .zip)")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "Additional tag to apply (repeatable)")
	cmd.Flags().StringToStringVar(&annotations, "annotation", nil, "Manifest annotation as key=value (repeatable)")
	cmd.MarkFlagsRequiredTogether("username", "password")
	cmd.MarkFlagsMutuallyExclusive("anonymous", "username")

	return cmd
}

// registryHost returns the registry host[:port] of ref.
func registryHost(ref string) (string, error) {
	r, err := orasregistry.ParseReference(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", registry.ErrInvalidReference, err)
	}
	return r.Registry, nil
}
