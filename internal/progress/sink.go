package progress

import "context"

// Sink consumes batches of progress events. Consume is only ever called from
// the hub goroutine and must not retain batch; Close is called once during
// hub shutdown.
type Sink interface {
	Consume(ctx context.Context, batch []Event) error
	Close(ctx context.Context) error
}

// Emitter publishes individual events. Hub satisfies it; the search engine
// only depends on this interface.
type Emitter interface {
	Emit(evt Event)
}

// Discard is an Emitter that drops every event.
var Discard Emitter = discard{}

type discard struct{}

func (discard) Emit(Event) {}
