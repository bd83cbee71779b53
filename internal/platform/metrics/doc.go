// Package metrics exposes Prometheus instrumentation for the registry's HTTP
// surface and API registrations.
package metrics
