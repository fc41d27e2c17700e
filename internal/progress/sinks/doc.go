// Package sinks implements progress consumers: a zap log sink for debugging a
// run and a Prometheus sink exporting search counters.
package sinks
