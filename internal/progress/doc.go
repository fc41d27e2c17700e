// Package progress carries search progress events from expansion tasks to
// pluggable sinks. Emit never blocks a task; a background goroutine batches
// events and fans them out to sinks such as structured logs or Prometheus.
package progress
