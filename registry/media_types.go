package registry

// Media types for archived directories in OCI registries.
const (
	// ArtifactType identifies archived directories as an OCI 1.1 artifact type.
	ArtifactType = "application/vnd.meigma.zipdir.v1"

	// MediaTypeZip is the media type of the zip archive layer.
	MediaTypeZip = "application/zip"
)
