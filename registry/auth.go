package registry

import (
	"strings"

	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
)

// dockerConfigCredential returns a credential func backed by the Docker
// config (~/.docker/config.json) and its credential helpers.
func dockerConfigCredential() (auth.CredentialFunc, error) {
	store, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		return nil, err
	}
	return credentials.Credential(store), nil
}

// staticCredential returns a credential func that answers with cred for
// registry and with no credential for any other host.
func staticCredential(registry string, cred auth.Credential) auth.CredentialFunc {
	return auth.StaticCredential(normalizeServerAddress(registry), cred)
}

// normalizeServerAddress extracts the host[:port] from a server address.
// It strips the scheme and path but preserves the port for credential matching.
func normalizeServerAddress(addr string) string {
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr, _, _ = strings.Cut(addr, "/")
	return addr
}
