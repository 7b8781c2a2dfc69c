// Package http exposes the disposal report over a chi-based HTTP API:
// JSON and CSV report endpoints with an explicit date parameter for
// deterministic queries, plus health and Prometheus metrics endpoints.
package http
