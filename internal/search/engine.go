package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/JakeFAU/wikihop/internal/clock/system"
	"github.com/JakeFAU/wikihop/internal/crawler"
	uuidgen "github.com/JakeFAU/wikihop/internal/id/uuid"
	"github.com/JakeFAU/wikihop/internal/progress"
	"github.com/JakeFAU/wikihop/internal/queue/memory"
	"github.com/JakeFAU/wikihop/internal/wiki"
)

var (
	// ErrNoPath is returned when the frontier drains without reaching the target.
	ErrNoPath = errors.New("no path found")
	// ErrTerminated is returned when Run is called on an engine that already ran.
	ErrTerminated = errors.New("search already terminated")
	// ErrRunning is returned when Run is called while a run is in progress.
	ErrRunning = errors.New("search already running")
)

// State is the lifecycle position of an Engine.
type State int32

// Engine states. Terminated is absorbing.
const (
	StateIdle State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Config holds the per-search settings fixed at startup.
type Config struct {
	Site    wiki.SiteURL
	Matcher wiki.Matcher
	// MaxInFlight caps concurrent fetches. Zero or negative means unbounded.
	MaxInFlight int64
	// SkipErrorPages treats responses with status >= 400 as dead ends instead
	// of parsing their bodies for links.
	SkipErrorPages bool
}

// Result describes a successful search.
type Result struct {
	RunID   uuid.UUID
	Path    Path
	Elapsed time.Duration
	// Visited counts articles admitted to the visited set.
	Visited int
	Fetched int64
}

// Snapshot is a point-in-time view of a run for status reporting.
type Snapshot struct {
	RunID    uuid.UUID     `json:"run_id"`
	State    string        `json:"state"`
	Target   string        `json:"target"`
	Visited  int64         `json:"visited"`
	Fetched  int64         `json:"fetched"`
	InFlight int64         `json:"in_flight"`
	Frontier int           `json:"frontier"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Engine runs one search. It is not reusable: after Run returns, the engine
// stays terminated.
type Engine struct {
	cfg     Config
	fetcher crawler.Fetcher
	clock   crawler.Clock
	ids     crawler.IDGenerator
	events  progress.Emitter
	logger  *zap.Logger

	state    atomic.Int32
	visited  atomic.Int64
	fetched  atomic.Int64
	inFlight atomic.Int64

	mu       sync.Mutex
	runID    uuid.UUID
	started  time.Time
	finished time.Time
	frontier *memory.Queue[Path]
}

// New constructs an Engine. Nil clock, ids, events, or logger fall back to
// the system clock, UUIDv7 IDs, no progress events, and a no-op logger.
func New(
	cfg Config,
	fetcher crawler.Fetcher,
	clock crawler.Clock,
	ids crawler.IDGenerator,
	events progress.Emitter,
	logger *zap.Logger,
) *Engine {
	if clock == nil {
		clock = system.New()
	}
	if ids == nil {
		ids = uuidgen.NewUUIDGenerator()
	}
	if events == nil {
		events = progress.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:     cfg,
		fetcher: fetcher,
		clock:   clock,
		ids:     ids,
		events:  events,
		logger:  logger,
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Run searches from the configured start article until the target is found,
// the frontier is exhausted (ErrNoPath), or ctx ends.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if e.fetcher == nil {
		return Result{}, errors.New("search: no fetcher configured")
	}
	if !e.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		if e.State() == StateRunning {
			return Result{}, ErrRunning
		}
		return Result{}, ErrTerminated
	}
	defer e.state.Store(int32(StateTerminated))

	runID, err := e.ids.NewRawID()
	if err != nil {
		return Result{}, fmt.Errorf("new run id: %w", err)
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &run{
		engine:   e,
		ctx:      runCtx,
		cancel:   cancel,
		id:       runID,
		start:    e.clock.Now(),
		frontier: memory.NewQueue[Path](),
		visited:  make(map[string]struct{}),
		outcomes: make(chan Outcome),
	}
	if e.cfg.MaxInFlight > 0 {
		r.limiter = semaphore.NewWeighted(e.cfg.MaxInFlight)
	}
	defer r.frontier.Close()

	e.mu.Lock()
	e.runID = runID
	e.started = r.start
	e.frontier = r.frontier
	e.mu.Unlock()

	e.logger.Info("search started",
		zap.Stringer("run_id", runID),
		zap.String("start", e.cfg.Site.Resolve(e.cfg.Site.Start)),
		zap.String("target", e.cfg.Matcher.Target()),
		zap.Int64("max_in_flight", e.cfg.MaxInFlight),
	)
	r.emit(progress.Event{Stage: progress.StageRunStart, Article: e.cfg.Site.Start})

	r.frontier.Push(NewPath(e.cfg.Site.Start))
	return r.loop()
}

// Snapshot reports progress of the current or last run.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		RunID:    e.runID,
		State:    e.State().String(),
		Target:   e.cfg.Matcher.Target(),
		Visited:  e.visited.Load(),
		Fetched:  e.fetched.Load(),
		InFlight: e.inFlight.Load(),
	}
	if e.frontier != nil {
		snap.Frontier = e.frontier.Len()
	}
	switch {
	case e.started.IsZero():
	case !e.finished.IsZero():
		snap.Elapsed = e.finished.Sub(e.started)
	default:
		snap.Elapsed = e.clock.Now().Sub(e.started)
	}
	return snap
}

func (e *Engine) markFinished(at time.Time) {
	e.mu.Lock()
	e.finished = at
	e.mu.Unlock()
}
