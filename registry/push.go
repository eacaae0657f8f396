package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"

	"github.com/meigma/zipdir"
	"github.com/meigma/zipdir/internal/ioutil"
)

// PushTo archives dir and pushes it to target as a single-layer artifact.
//
// The manifest is tagged with tag, unless tag is empty, and then with every
// tag given by WithTags. The returned descriptor identifies the manifest.
// A layer already present in target is not pushed again. Archiving errors
// are returned unchanged, so *zipdir.FSError and *zipdir.SinkError can be
// matched with errors.As.
func PushTo(ctx context.Context, target oras.Target, tag, dir string, opts ...PushOption) (ocispec.Descriptor, error) {
	cfg := pushConfig{fileOpts: zipdir.DefaultFileOptions()}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f, err := os.CreateTemp(cfg.tempDir, "zipdir-*.zip")
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("create temp archive: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(f.Name())
	}()

	info, err := f.Stat()
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("stat temp archive: %w", err)
	}
	cfg.createOpts = append(cfg.createOpts, zipdir.WithOutputFile(info))

	layer, err := writeArchive(f, dir, &cfg)
	if err != nil {
		return ocispec.Descriptor{}, err
	}
	logger.Debug("archive staged", "digest", layer.Digest.String(), "size", layer.Size)

	if err := pushLayer(ctx, target, layer, f); err != nil {
		return ocispec.Descriptor{}, err
	}

	manifest, err := oras.PackManifest(ctx, target, oras.PackManifestVersion1_1, ArtifactType, oras.PackManifestOptions{
		Layers:              []ocispec.Descriptor{layer},
		ManifestAnnotations: cfg.annotations,
	})
	if err != nil {
		return ocispec.Descriptor{}, fmt.Errorf("push manifest: %w", mapError(err))
	}

	tags := cfg.tags
	if tag != "" {
		tags = append([]string{tag}, tags...)
	}
	for _, t := range tags {
		if err := target.Tag(ctx, manifest, t); err != nil {
			return ocispec.Descriptor{}, fmt.Errorf("tag %q: %w", t, mapError(err))
		}
	}

	logger.Debug("manifest pushed", "digest", manifest.Digest.String(), "tags", tags)
	return manifest, nil
}

// writeArchive archives dir into f and returns the layer descriptor of the
// written bytes.
func writeArchive(f *os.File, dir string, cfg *pushConfig) (ocispec.Descriptor, error) {
	digester := digest.Canonical.Digester()
	cw := &ioutil.CountingWriter{W: io.MultiWriter(f, digester.Hash())}

	if err := zipdir.CreateFromDirectoryWithOptions(zipdir.NewZipSink(cw), dir, cfg.fileOpts, cfg.createOpts...); err != nil {
		return ocispec.Descriptor{}, err
	}
	if cw.N > math.MaxInt64 {
		return ocispec.Descriptor{}, fmt.Errorf("archive size %d exceeds maximum int64", cw.N)
	}

	title := cfg.title
	if title == "" {
		title = defaultTitle(dir)
	}
	return ocispec.Descriptor{
		MediaType: MediaTypeZip,
		Digest:    digester.Digest(),
		Size:      int64(cw.N), //nolint:gosec // overflow checked above
		Annotations: map[string]string{
			ocispec.AnnotationTitle: title,
		},
	}, nil
}

// pushLayer uploads the archive in f unless target already has it.
func pushLayer(ctx context.Context, target oras.Target, layer ocispec.Descriptor, f *os.File) error {
	exists, err := target.Exists(ctx, layer)
	if err != nil {
		return fmt.Errorf("check layer: %w", mapError(err))
	}
	if exists {
		return nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind temp archive: %w", err)
	}
	if err := target.Push(ctx, layer, f); err != nil {
		return fmt.Errorf("push layer: %w", mapError(err))
	}
	return nil
}

// defaultTitle names the layer after the archived directory.
func defaultTitle(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	base := filepath.Base(abs)
	if base == string(filepath.Separator) || base == "." {
		return "archive.zip"
	}
	return base + ".zip"
}
