package zipdir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "store", CompressionStore.String())
	assert.Equal(t, "deflate", CompressionDeflate.String())
	assert.Equal(t, "zstd", CompressionZstd.String())
	assert.Equal(t, "unknown", Compression(99).String())
}

func TestParseCompression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Compression
		wantErr bool
	}{
		{"store", CompressionStore, false},
		{"stored", CompressionStore, false},
		{"none", CompressionStore, false},
		{"deflate", CompressionDeflate, false},
		{"zstd", CompressionZstd, false},
		{"", 0, true},
		{"gzip", 0, true},
		{"ZSTD", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCompression(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    FileOptions
		wantErr bool
	}{
		{"default", DefaultFileOptions(), false},
		{"store ignores level", FileOptions{Compression: CompressionStore, Level: 500}, false},
		{"deflate default", FileOptions{Compression: CompressionDeflate}, false},
		{"deflate min", FileOptions{Compression: CompressionDeflate, Level: MinDeflateLevel}, false},
		{"deflate max", FileOptions{Compression: CompressionDeflate, Level: MaxDeflateLevel}, false},
		{"deflate below min", FileOptions{Compression: CompressionDeflate, Level: MinDeflateLevel - 1}, true},
		{"deflate above max", FileOptions{Compression: CompressionDeflate, Level: MaxDeflateLevel + 1}, true},
		{"zstd default", FileOptions{Compression: CompressionZstd}, false},
		{"zstd min", FileOptions{Compression: CompressionZstd, Level: MinZstdLevel}, false},
		{"zstd max", FileOptions{Compression: CompressionZstd, Level: MaxZstdLevel}, false},
		{"zstd above max", FileOptions{Compression: CompressionZstd, Level: MaxZstdLevel + 1}, true},
		{"zstd negative", FileOptions{Compression: CompressionZstd, Level: -5}, true},
		{"unknown method", FileOptions{Compression: Compression(7)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOptions)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProgressStageString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "enumerating", StageEnumerating.String())
	assert.Equal(t, "writing", StageWriting.String())
	assert.Equal(t, "finalizing", StageFinalizing.String())
	assert.Equal(t, "unknown", ProgressStage(42).String())
}
