// Package registry pushes archived directories to OCI registries.
//
// A directory is archived with zipdir into a temporary file and pushed as a
// single-layer OCI 1.1 artifact. PushTo works against any oras.Target, such
// as an OCI layout or an in-memory store; Client resolves references against
// remote registries with authentication.
package registry
