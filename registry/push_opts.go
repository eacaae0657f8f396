package registry

import (
	"log/slog"

	"github.com/meigma/zipdir"
)

// PushOption configures a push.
type PushOption func(*pushConfig)

type pushConfig struct {
	tags        []string
	annotations map[string]string
	title       string
	tempDir     string
	fileOpts    zipdir.FileOptions
	createOpts  []zipdir.Option
	logger      *slog.Logger
}

// WithTags applies additional tags to the pushed manifest.
//
// The primary tag is always applied first. These tags are applied after
// the manifest has been pushed.
func WithTags(tags ...string) PushOption {
	return func(cfg *pushConfig) {
		cfg.tags = append(cfg.tags, tags...)
	}
}

// WithAnnotations sets custom annotations on the manifest.
//
// org.opencontainers.image.created is set automatically and can be
// overridden.
func WithAnnotations(annotations map[string]string) PushOption {
	return func(cfg *pushConfig) {
		if cfg.annotations == nil {
			cfg.annotations = make(map[string]string, len(annotations))
		}
		for k, v := range annotations {
			cfg.annotations[k] = v
		}
	}
}

// WithTitle sets the org.opencontainers.image.title annotation of the zip
// layer. The default is the base name of the directory with a ".zip" suffix.
func WithTitle(title string) PushOption {
	return func(cfg *pushConfig) {
		cfg.title = title
	}
}

// WithTempDir sets the directory holding the archive while it is pushed.
// The default is os.TempDir. If the directory lies inside the archived tree,
// the staged archive is left out of the layer.
func WithTempDir(dir string) PushOption {
	return func(cfg *pushConfig) {
		cfg.tempDir = dir
	}
}

// WithFileOptions sets the compression applied to archive entries.
// The default stores entries uncompressed.
func WithFileOptions(opts zipdir.FileOptions) PushOption {
	return func(cfg *pushConfig) {
		cfg.fileOpts = opts
	}
}

// WithCreateOptions forwards options, such as a logger or progress
// callback, to archive creation.
func WithCreateOptions(opts ...zipdir.Option) PushOption {
	return func(cfg *pushConfig) {
		cfg.createOpts = append(cfg.createOpts, opts...)
	}
}

func withPushLogger(logger *slog.Logger) PushOption {
	return func(cfg *pushConfig) {
		cfg.logger = logger
	}
}
