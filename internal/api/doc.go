// Package api hosts the optional status server that runs alongside a search.
// Routes:
//   - GET /healthz and /readyz for probes.
//   - GET /metrics for Prometheus scraping.
//   - GET /v1/search for a JSON snapshot of the running search.
//   - GET /v1/search/events for the most recent progress events.
package api
