package sinks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JakeFAU/wikihop/internal/progress"
)

func TestLogSinkWritesStructuredFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewLogSink(zap.New(core))

	err := sink.Consume(context.Background(), []progress.Event{{
		RunID:       uuid.New(),
		TS:          time.Now(),
		Stage:       progress.StageFetchDone,
		Article:     "/wiki/Philosophy",
		Hops:        1,
		StatusClass: progress.Status4xx,
		Links:       7,
		Note:        "error page parsed",
	}})
	require.NoError(t, err)
	require.NoError(t, sink.Close(context.Background()))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "FETCH_DONE", fields["stage"])
	require.Equal(t, "/wiki/Philosophy", fields["article"])
	require.Equal(t, "4xx", fields["status_class"])
	require.Equal(t, int64(7), fields["links"])
	require.Equal(t, "error page parsed", fields["note"])
}
