/*
Package observability provides Prometheus instrumentation for codecs and
component stores.

Metrics are registered on a caller-supplied registerer, so several instances
can coexist in one process (and in tests).
*/
package observability
