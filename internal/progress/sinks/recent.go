package sinks

import (
	"context"
	"sync"

	"github.com/JakeFAU/wikihop/internal/progress"
)

const defaultRecentCapacity = 512

// RecentSink keeps the most recent events in a fixed-size ring so the status
// server can show what the search is doing right now.
type RecentSink struct {
	mu    sync.RWMutex
	buf   []progress.Event
	next  int
	full  bool
	total int64
}

// NewRecentSink retains up to capacity events; non-positive selects a default.
func NewRecentSink(capacity int) *RecentSink {
	if capacity <= 0 {
		capacity = defaultRecentCapacity
	}
	return &RecentSink{buf: make([]progress.Event, capacity)}
}

// Consume copies batch into the ring, overwriting the oldest entries.
func (s *RecentSink) Consume(_ context.Context, batch []progress.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, evt := range batch {
		s.buf[s.next] = evt
		s.next++
		if s.next == len(s.buf) {
			s.next = 0
			s.full = true
		}
	}
	s.total += int64(len(batch))
	return nil
}

// Recent returns up to limit events, newest first. A non-positive limit
// returns everything retained.
func (s *RecentSink) Recent(limit int) []progress.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.full {
		size = len(s.buf)
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]progress.Event, 0, limit)
	idx := s.next
	for range limit {
		idx--
		if idx < 0 {
			idx = len(s.buf) - 1
		}
		out = append(out, s.buf[idx])
	}
	return out
}

// Total reports how many events were ever consumed, including evicted ones.
func (s *RecentSink) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Close is a no-op; retained events stay readable after hub shutdown.
func (s *RecentSink) Close(context.Context) error {
	return nil
}
