//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"oras.land/oras-go/v2/content"

	"github.com/meigma/zipdir/internal/testutil"
	"github.com/meigma/zipdir/registry"
)

var (
	registryOnce sync.Once
	registryAddr string
	registryErr  error
)

// getRegistry returns the shared registry address, starting the container if needed.
// The container is shared across all tests.
func getRegistry(tb testing.TB) string {
	tb.Helper()

	if os.Getenv("SKIP_DOCKER_TESTS") == "1" {
		tb.Skip("SKIP_DOCKER_TESTS is set")
	}

	registryOnce.Do(func() {
		registryAddr, registryErr = startRegistryContainer(context.Background())
	})
	if registryErr != nil {
		tb.Fatalf("start registry container: %v", registryErr)
	}
	return registryAddr
}

// startRegistryContainer starts a registry:2 container and returns the host:port address.
func startRegistryContainer(ctx context.Context) (string, error) {
	req := testcontainers.ContainerRequest{
		Image:        "registry:2",
		ExposedPorts: []string{"5000/tcp"},
		WaitingFor:   wait.ForHTTP("/v2/").WithPort("5000/tcp").WithStatusCodeMatcher(isOKStatus),
	}

	// Cleanup is handled by the testcontainers reaper.
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start registry container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve registry host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5000/tcp")
	if err != nil {
		return "", fmt.Errorf("resolve registry port: %w", err)
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), nil
}

func isOKStatus(status int) bool {
	return status >= 200 && status < 300
}

// newTestClient creates a client configured for the local test registry.
func newTestClient(opts ...registry.Option) *registry.Client {
	return registry.New(append([]registry.Option{registry.WithPlainHTTP(true), registry.WithAnonymous()}, opts...)...)
}

// testRef generates a unique reference for a test to avoid collisions.
func testRef(addr, name, tag string) string {
	return fmt.Sprintf("%s/test/%s:%s", addr, name, tag)
}

// pulledArchive is an artifact read back from the registry.
type pulledArchive struct {
	manifest ocispec.Manifest
	entries  []testutil.ZipEntry
}

// pull resolves ref and reads back its manifest and zip layer.
func pull(tb testing.TB, client *registry.Client, ref string) pulledArchive {
	tb.Helper()
	ctx := context.Background()

	repo, err := client.Repository(ref)
	require.NoError(tb, err)

	desc, err := repo.Resolve(ctx, repo.Reference.Reference)
	require.NoError(tb, err, "resolve %s", ref)

	data, err := content.FetchAll(ctx, repo, desc)
	require.NoError(tb, err, "fetch manifest")
	var manifest ocispec.Manifest
	require.NoError(tb, json.Unmarshal(data, &manifest))
	require.Len(tb, manifest.Layers, 1)

	layer, err := content.FetchAll(ctx, repo, manifest.Layers[0])
	require.NoError(tb, err, "fetch layer")

	return pulledArchive{manifest: manifest, entries: testutil.ReadZip(tb, layer)}
}

// nestedTree contains nested directories, an empty directory and binary content.
var nestedTree = map[string]string{
	"root.txt":        "root file",
	"dir1/a.txt":      "file a in dir1",
	"dir1/sub/c.txt":  "file c in dir1/sub",
	"dir2/deep/y.bin": string([]byte{0x00, 0x01, 0xfe, 0xff}),
	"empty/":          "",
}
