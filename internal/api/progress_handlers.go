package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JakeFAU/wikihop/internal/progress"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// EventSource returns the most recent progress events, newest first.
type EventSource interface {
	Recent(limit int) []progress.Event
}

// ProgressHandler exposes read-only views of the progress stream.
type ProgressHandler struct {
	events EventSource
	logger *zap.Logger
}

// NewProgressHandler wires the event source and logger.
func NewProgressHandler(events EventSource, logger *zap.Logger) *ProgressHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressHandler{events: events, logger: logger}
}

// ListEvents handles GET /v1/search/events?limit=&stage=. It returns
// {"events": [...]} newest first, 400 for invalid filters, or 503 when no
// event source is configured.
func (h *ProgressHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		writeError(w, http.StatusServiceUnavailable, "progress events unavailable")
		return
	}
	limit, err := parseLimit(r, defaultEventLimit, maxEventLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	stage, err := parseStage(r.URL.Query().Get("stage"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var events []progress.Event
	if stage == "" {
		events = h.events.Recent(limit)
	} else {
		// Filter over everything retained, then apply the limit.
		for _, evt := range h.events.Recent(0) {
			if evt.Stage != stage {
				continue
			}
			events = append(events, evt)
			if len(events) == limit {
				break
			}
		}
	}
	h.logger.Debug("listed progress events", zap.Int("count", len(events)))
	writeJSON(w, http.StatusOK, map[string]any{"events": toEventDTOs(events)})
}

func parseLimit(r *http.Request, def, maxLimit int) (int, error) {
	limStr := r.URL.Query().Get("limit")
	if limStr == "" {
		return def, nil
	}
	val, err := strconv.Atoi(limStr)
	if err != nil || val <= 0 {
		return 0, errors.New("invalid limit")
	}
	if val > maxLimit {
		val = maxLimit
	}
	return val, nil
}

func parseStage(input string) (progress.Stage, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	stage := progress.Stage(strings.ToUpper(input))
	switch stage {
	case progress.StageRunStart, progress.StageDispatch, progress.StageDuplicate,
		progress.StageFetchDone, progress.StageFetchError, progress.StageMatch,
		progress.StageExhausted:
		return stage, nil
	default:
		return "", errors.New("invalid stage")
	}
}

func toEventDTOs(in []progress.Event) []eventDTO {
	out := make([]eventDTO, 0, len(in))
	for _, evt := range in {
		out = append(out, eventDTO{
			RunID:       uuid.UUID(evt.RunID).String(),
			TS:          evt.TS,
			Stage:       string(evt.Stage),
			Article:     evt.Article,
			Hops:        evt.Hops,
			Bytes:       evt.Bytes,
			Links:       evt.Links,
			StatusClass: string(evt.StatusClass),
			DurationMs:  evt.Dur.Milliseconds(),
			Note:        evt.Note,
		})
	}
	return out
}

type eventDTO struct {
	RunID       string    `json:"run_id"`
	TS          time.Time `json:"ts"`
	Stage       string    `json:"stage"`
	Article     string    `json:"article,omitempty"`
	Hops        int       `json:"hops,omitempty"`
	Bytes       int64     `json:"bytes,omitempty"`
	Links       int       `json:"links,omitempty"`
	StatusClass string    `json:"status_class,omitempty"`
	DurationMs  int64     `json:"duration_ms,omitempty"`
	Note        string    `json:"note,omitempty"`
}
