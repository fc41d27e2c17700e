// Command wikihop searches Wikipedia's internal link graph for a path from a
// start article to a target article.
//
// Architecture overview:
//   - CLI: cmd wires cobra flags onto Viper keys, validates the start URL, and prints the report. Invalid URLs and
//     exhausted searches are reported on stderr with exit status 0; a missing argument is fatal.
//   - Search: internal/search owns the dispatch loop. Frontier paths flow through an unbounded in-memory queue; the
//     loop drops articles it has already visited and starts one goroutine per new article.
//   - Fetch pipeline: each goroutine checks the article against the matcher, fetches it once through the Colly-based
//     fetcher (no retries, no robots.txt), extracts /wiki/ links with goquery, and pushes child paths.
//   - Termination: the first matched path cancels the run context. In-flight fetches abort, late pushes are dropped,
//     and dead-end errors stop being logged.
//   - Observability: zap logs go to stderr; progress events are batched by the Hub and fanned out to a log sink, a
//     Prometheus sink, and a ring of recent events. The optional status server (--listen) exposes /healthz, /readyz,
//     /metrics, /v1/search, and /v1/search/events.
//
// Quick checklist:
//   - Run: go run . https://en.wikipedia.org/wiki/Philosophy
//   - Env overrides: WIKIHOP_SEARCH_TARGET, WIKIHOP_SEARCH_MAX_IN_FLIGHT, WIKIHOP_HTTP_TIMEOUT_SECONDS,
//     WIKIHOP_SERVER_LISTEN, WIKIHOP_LOGGING_DEVELOPMENT.
//   - Bound concurrency with --max-in-flight when running against a rate-limited mirror.
package main
