// Package system provides the wall clock used to time searches.
package system

import "time"

// Clock implements crawler.Clock with time.Now. Readings keep the monotonic
// component so elapsed times survive wall-clock adjustments.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current local time.
func (Clock) Now() time.Time {
	return time.Now()
}
