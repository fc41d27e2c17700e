package sinks

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JakeFAU/wikihop/internal/progress"
)

// PrometheusSink exports search progress as Prometheus collectors.
type PrometheusSink struct {
	runsStarted   prometheus.Counter
	runsCompleted *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	matchHops     prometheus.Histogram

	dispatched    prometheus.Counter
	duplicates    prometheus.Counter
	fetches       *prometheus.CounterVec
	fetchErrors   prometheus.Counter
	fetchBytes    prometheus.Counter
	fetchDuration *prometheus.HistogramVec
	linksFound    prometheus.Counter
}

// NewPrometheusSink registers the collectors against the provided registry.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		runsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikihop_runs_started_total",
			Help: "Total search runs started.",
		}),
		runsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wikihop_runs_completed_total",
			Help: "Total search runs completed partitioned by result.",
		}, []string{"result"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wikihop_run_duration_seconds",
			Help:    "Wall time per completed search run.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"result"}),
		matchHops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikihop_match_hops",
			Help:    "Length of the reported path.",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
		}),
		dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikihop_articles_dispatched_total",
			Help: "Articles admitted to the visited set and expanded.",
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikihop_frontier_duplicates_total",
			Help: "Frontier paths dropped because their article was already visited.",
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wikihop_fetches_total",
			Help: "Completed article fetches partitioned by status class.",
		}, []string{"status_class"}),
		fetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikihop_fetch_errors_total",
			Help: "Fetches that ended in a transport or body-read failure.",
		}),
		fetchBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikihop_fetch_bytes_total",
			Help: "Response bytes downloaded.",
		}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wikihop_fetch_duration_seconds",
			Help:    "Fetch duration partitioned by status class.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"status_class"}),
		linksFound: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikihop_links_discovered_total",
			Help: "Internal article links pushed onto the frontier.",
		}),
	}
	for _, collector := range []prometheus.Collector{
		s.runsStarted,
		s.runsCompleted,
		s.runDuration,
		s.matchHops,
		s.dispatched,
		s.duplicates,
		s.fetches,
		s.fetchErrors,
		s.fetchBytes,
		s.fetchDuration,
		s.linksFound,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the Prometheus collectors using the provided batch.
func (s *PrometheusSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		s.consumeEvent(evt)
	}
	return nil
}

func (s *PrometheusSink) consumeEvent(evt progress.Event) {
	switch evt.Stage {
	case progress.StageRunStart:
		s.runsStarted.Inc()
	case progress.StageMatch:
		s.runsCompleted.WithLabelValues("match").Inc()
		s.observeRuntime(evt, "match")
		s.matchHops.Observe(float64(evt.Hops))
	case progress.StageExhausted:
		s.runsCompleted.WithLabelValues("exhausted").Inc()
		s.observeRuntime(evt, "exhausted")
	case progress.StageDispatch:
		s.dispatched.Inc()
	case progress.StageDuplicate:
		s.duplicates.Inc()
	case progress.StageFetchError:
		s.fetchErrors.Inc()
	case progress.StageFetchDone:
		s.handleFetchEvent(evt)
	}
}

func (s *PrometheusSink) observeRuntime(evt progress.Event, label string) {
	if evt.Dur > 0 {
		s.runDuration.WithLabelValues(label).Observe(evt.Dur.Seconds())
	}
}

func (s *PrometheusSink) handleFetchEvent(evt progress.Event) {
	statusClass := string(evt.StatusClass)
	if statusClass == "" {
		statusClass = string(progress.StatusOther)
	}
	s.fetches.WithLabelValues(statusClass).Inc()
	if evt.Bytes > 0 {
		s.fetchBytes.Add(float64(evt.Bytes))
	}
	if evt.Links > 0 {
		s.linksFound.Add(float64(evt.Links))
	}
	if evt.Dur > 0 {
		s.fetchDuration.WithLabelValues(statusClass).Observe(evt.Dur.Seconds())
	}
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
