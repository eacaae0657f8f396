//go:build integration

// Package integration provides integration tests for pushing archived
// directories to a real registry.
//
// These tests require Docker and spin up a registry:2 container using
// testcontainers. Run with: go test -tags=integration ./integration/...
package integration
