package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type sinkFunc func(context.Context, []Event) error

func (f sinkFunc) Consume(ctx context.Context, batch []Event) error {
	return f(ctx, batch)
}

func (sinkFunc) Close(context.Context) error {
	return nil
}

// ExampleHub_Emit counts the links discovered during a run.
func ExampleHub_Emit() {
	var links int
	hub := NewHub(Config{MaxBatchEvents: 1, MaxBatchWait: time.Second}, sinkFunc(func(_ context.Context, batch []Event) error {
		for _, evt := range batch {
			links += evt.Links
		}
		return nil
	}))

	hub.Emit(Event{
		RunID:       uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		TS:          time.Unix(0, 0),
		Stage:       StageFetchDone,
		Article:     "/wiki/Philosophy",
		StatusClass: Status2xx,
		Links:       42,
	})
	if err := hub.Close(context.Background()); err != nil {
		panic(err)
	}

	fmt.Printf("links discovered: %d\n", links)
	// Output:
	// links discovered: 42
}
