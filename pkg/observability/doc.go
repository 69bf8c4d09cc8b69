/*
Package observability turns bot lifecycle events into Prometheus metrics and
structured log lines.

Metrics registers its collectors against a caller-supplied registry so tests
and embedders can keep them off the global default.
*/
package observability
