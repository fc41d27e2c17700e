package search

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/JakeFAU/wikihop/internal/crawler"
	"github.com/JakeFAU/wikihop/internal/progress"
	"github.com/JakeFAU/wikihop/internal/queue/memory"
	"github.com/JakeFAU/wikihop/internal/wiki"
)

// run is the state of a single Engine.Run call. visited and pending belong to
// the dispatch loop goroutine; expansion goroutines only touch the frontier,
// the outcomes channel, and the engine's atomic counters.
type run struct {
	engine   *Engine
	ctx      context.Context
	cancel   context.CancelFunc
	id       uuid.UUID
	start    time.Time
	frontier *memory.Queue[Path]
	limiter  *semaphore.Weighted
	outcomes chan Outcome

	visited map[string]struct{}
	pending int
}

func (r *run) loop() (Result, error) {
	for {
		if r.pending == 0 && r.frontier.Len() == 0 {
			return Result{}, r.exhausted()
		}
		select {
		case <-r.ctx.Done():
			r.finish()
			return Result{}, fmt.Errorf("search canceled: %w", r.ctx.Err())
		case <-r.frontier.Ready():
			if path, ok := r.frontier.TryPop(); ok {
				r.dispatch(path)
			}
		case out := <-r.outcomes:
			r.pending--
			if out.Kind == OutcomeMatched {
				return r.terminate(out.Path), nil
			}
		}
	}
}

// dispatch admits path if its last article has not been seen and starts an
// expansion goroutine for it.
func (r *run) dispatch(path Path) {
	id := path.Last()
	if _, seen := r.visited[id]; seen {
		r.emit(progress.Event{Stage: progress.StageDuplicate, Article: id, Hops: path.Hops()})
		return
	}
	r.visited[id] = struct{}{}
	r.pending++
	r.engine.visited.Add(1)
	r.emit(progress.Event{Stage: progress.StageDispatch, Article: id, Hops: path.Hops()})

	go func() {
		out := r.expand(path)
		select {
		case r.outcomes <- out:
		case <-r.ctx.Done():
		}
	}()
}

// expand checks, fetches, and extracts one frontier node.
func (r *run) expand(path Path) Outcome {
	e := r.engine
	id := path.Last()
	if e.cfg.Matcher.IsExcluded(id) {
		return completed(0)
	}
	if e.cfg.Matcher.IsTarget(id) {
		return matched(path)
	}

	if r.limiter != nil {
		if err := r.limiter.Acquire(r.ctx, 1); err != nil {
			return completed(0)
		}
		defer r.limiter.Release(1)
	}

	url := e.cfg.Site.Resolve(id)
	e.inFlight.Add(1)
	resp, err := e.fetcher.Fetch(r.ctx, crawler.FetchRequest{URL: url, Hops: path.Hops()})
	e.inFlight.Add(-1)
	if err != nil {
		r.deadEnd(path, "Error calling article", url, err)
		return completed(0)
	}
	e.fetched.Add(1)

	status := progress.ClassifyStatus(resp.StatusCode)
	if e.cfg.SkipErrorPages && resp.StatusCode >= 400 {
		r.emit(progress.Event{
			Stage:       progress.StageFetchDone,
			Article:     id,
			Hops:        path.Hops(),
			Bytes:       int64(len(resp.Body)),
			StatusClass: status,
			Dur:         resp.Duration,
			Note:        "error page skipped",
		})
		return completed(0)
	}

	links, err := wiki.ExtractLinks(bytes.NewReader(resp.Body))
	if err != nil {
		r.deadEnd(path, "Error reading article", url, err)
		return completed(0)
	}
	children := 0
	for _, link := range links {
		if r.frontier.Push(path.Child(link)) {
			children++
		}
	}
	r.emit(progress.Event{
		Stage:       progress.StageFetchDone,
		Article:     id,
		Hops:        path.Hops(),
		Bytes:       int64(len(resp.Body)),
		Links:       children,
		StatusClass: status,
		Dur:         resp.Duration,
	})
	return completed(children)
}

func (r *run) deadEnd(path Path, msg, url string, err error) {
	if !r.logEnabled() {
		return
	}
	r.engine.logger.Error(msg, zap.String("url", url), zap.Error(err))
	r.emit(progress.Event{
		Stage:   progress.StageFetchError,
		Article: path.Last(),
		Hops:    path.Hops(),
		Note:    err.Error(),
	})
}

// logEnabled is false once the run has stopped.
func (r *run) logEnabled() bool {
	return r.ctx.Err() == nil
}

func (r *run) terminate(path Path) Result {
	r.cancel()
	r.engine.state.Store(int32(StateTerminated))
	r.frontier.Close()
	now := r.finish()
	elapsed := now.Sub(r.start)

	r.engine.events.Emit(r.event(progress.Event{
		Stage:   progress.StageMatch,
		Article: path.Last(),
		Hops:    path.Hops(),
		Dur:     elapsed,
	}))
	r.engine.logger.Info("target found",
		zap.Stringer("run_id", r.id),
		zap.Int("hops", path.Hops()),
		zap.Int("visited", len(r.visited)),
		zap.Duration("elapsed", elapsed),
	)
	return Result{
		RunID:   r.id,
		Path:    path,
		Elapsed: elapsed,
		Visited: len(r.visited),
		Fetched: r.engine.fetched.Load(),
	}
}

func (r *run) exhausted() error {
	now := r.finish()
	r.emit(progress.Event{Stage: progress.StageExhausted, Dur: now.Sub(r.start)})
	r.engine.logger.Info("frontier exhausted",
		zap.Stringer("run_id", r.id),
		zap.Int("visited", len(r.visited)),
	)
	return ErrNoPath
}

func (r *run) finish() time.Time {
	now := r.engine.clock.Now()
	r.engine.markFinished(now)
	return now
}

// emit forwards evt while the run is live.
func (r *run) emit(evt progress.Event) {
	if !r.logEnabled() {
		return
	}
	r.engine.events.Emit(r.event(evt))
}

func (r *run) event(evt progress.Event) progress.Event {
	evt.RunID = r.id
	evt.TS = r.engine.clock.Now().UTC()
	return evt
}
