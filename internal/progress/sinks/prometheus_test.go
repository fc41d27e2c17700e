package sinks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/wikihop/internal/progress"
)

// TestPrometheusSinkRecordsMetrics ensures counters and histograms are incremented from events.
func TestPrometheusSinkRecordsMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	sink, err := NewPrometheusSink(reg)
	require.NoError(t, err)

	runID := uuid.New()
	now := time.Now()
	batch := []progress.Event{
		{RunID: runID, TS: now, Stage: progress.StageRunStart},
		{RunID: runID, TS: now, Stage: progress.StageDispatch, Article: "/wiki/Philosophy", Hops: 1},
		{
			RunID:       runID,
			TS:          now,
			Stage:       progress.StageFetchDone,
			Article:     "/wiki/Philosophy",
			Bytes:       2048,
			Links:       3,
			StatusClass: progress.Status2xx,
			Dur:         200 * time.Millisecond,
		},
		{RunID: runID, TS: now, Stage: progress.StageDuplicate, Article: "/wiki/Philosophy"},
		{RunID: runID, TS: now, Stage: progress.StageFetchError, Article: "/wiki/Logic"},
		{RunID: runID, TS: now, Stage: progress.StageMatch, Article: "/wiki/Adolf_Hitler", Hops: 2, Dur: 3 * time.Second},
	}

	require.NoError(t, sink.Consume(context.Background(), batch))

	require.Equal(t, 1.0, testutil.ToFloat64(sink.runsStarted))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.runsCompleted.WithLabelValues("match")))
	require.Equal(t, 0.0, testutil.ToFloat64(sink.runsCompleted.WithLabelValues("exhausted")))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.dispatched))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.duplicates))
	require.Equal(t, 1.0, testutil.ToFloat64(sink.fetchErrors))
	require.InDelta(t, 1.0, testutil.ToFloat64(sink.fetches.WithLabelValues(string(progress.Status2xx))), 1e-9)
	require.InDelta(t, 2048.0, testutil.ToFloat64(sink.fetchBytes), 1e-9)
	require.InDelta(t, 3.0, testutil.ToFloat64(sink.linksFound), 1e-9)
	require.Equal(t, 1, testutil.CollectAndCount(sink.fetchDuration, "wikihop_fetch_duration_seconds"))
	require.Equal(t, 1, testutil.CollectAndCount(sink.matchHops, "wikihop_match_hops"))
}

func TestPrometheusSinkRejectsDuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewPrometheusSink(reg)
	require.NoError(t, err)
	_, err = NewPrometheusSink(reg)
	require.Error(t, err)
}
