package registry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	orasregistry "oras.land/oras-go/v2/registry"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/retry"

	"github.com/meigma/zipdir"
)

// Client pushes archived directories to remote OCI registries.
type Client struct {
	plainHTTP  bool
	userAgent  string
	anonymous  bool // skip credential lookup entirely
	credential auth.CredentialFunc
	logger     *slog.Logger

	// authClient is shared by every repository so tokens are reused.
	authClient *auth.Client
}

// New creates a new Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent: "zipdir/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}

	c.authClient = &auth.Client{
		Client: retry.DefaultClient,
		Cache:  auth.NewCache(),
		Credential: func(ctx context.Context, hostport string) (auth.Credential, error) {
			if c.anonymous || c.credential == nil {
				return auth.EmptyCredential, nil
			}
			return c.credential(ctx, hostport)
		},
		Header: http.Header{
			"User-Agent": []string{c.userAgent},
		},
	}

	return c
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// Repository returns an authenticated remote repository for ref.
// The tag or digest in ref, if any, is ignored.
func (c *Client) Repository(ref string) (*remote.Repository, error) {
	repo, err := remote.NewRepository(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidReference, ref, err)
	}
	repo.PlainHTTP = c.plainHTTP
	repo.Client = c.authClient
	return repo, nil
}

// Push archives dir and pushes it to the repository named by ref.
//
// The ref must include a tag (e.g., "registry.com/repo:v1.0.0"). Use
// WithTags to apply additional tags to the same manifest.
func (c *Client) Push(ctx context.Context, ref, dir string, opts ...PushOption) (ocispec.Descriptor, error) {
	parsed, err := parseTaggedRef(ref)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	repo, err := c.Repository(ref)
	if err != nil {
		return ocispec.Descriptor{}, err
	}

	logger := c.log()
	opts = append([]PushOption{
		withPushLogger(logger),
		WithCreateOptions(zipdir.WithLogger(logger)),
	}, opts...)

	desc, err := PushTo(ctx, repo, parsed.Reference, dir, opts...)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	logger.Info("pushed archive", "ref", ref, "digest", desc.Digest.String())
	return desc, nil
}

// parseTaggedRef parses ref and checks that it carries a tag.
func parseTaggedRef(ref string) (orasregistry.Reference, error) {
	r, err := orasregistry.ParseReference(ref)
	if err != nil {
		return orasregistry.Reference{}, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	if r.Reference == "" {
		return orasregistry.Reference{}, fmt.Errorf("%w: reference must include a tag", ErrInvalidReference)
	}
	if err := r.ValidateReferenceAsTag(); err != nil {
		return orasregistry.Reference{}, fmt.Errorf("%w: reference must include a tag: %v", ErrInvalidReference, err)
	}
	return r, nil
}
