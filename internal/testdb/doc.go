//go:build integration

// Package testdb provides PostgreSQL helpers for integration tests.
//
// Open returns a migrated database. It uses DATABASE_URL when set and
// otherwise starts a disposable postgres container with testcontainers-go,
// skipping the test when Docker is unavailable. WithTx runs a test body in a
// transaction that is always rolled back, and Truncate clears the registry
// tables for tests that must observe committed state across connections.
//
// The package only builds with the integration tag:
//
//	go test -tags=integration ./...
package testdb
