// Package observability turns lifecycle events into Prometheus metrics and
// structured log records.
//
// Metrics registers its collectors on a caller-supplied registry so tests and
// embedders stay isolated from the global default registry.
package observability
