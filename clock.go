package vfs

import (
	"sync/atomic"
	"time"
)

// Clock is the FileTimeSource capability described by the design notes: a
// source of nanosecond-resolution, monotonically increasing timestamps that
// the filesystem stamps onto File headers. Tests inject a fake clock with
// virtual time so scenarios are deterministic.
type Clock interface {
	// Now returns the current time as nanoseconds since an unspecified epoch.
	// Successive calls never return a smaller value.
	Now() int64
}

// systemClock is the default Clock, backed by time.Now: the wall-clock time
// at package start plus the monotonic time elapsed since then, so a wall
// clock step backwards never makes Now smaller.
type systemClock struct{}

var systemClockStart = time.Now()

func (systemClock) Now() int64 {
	return systemClockStart.UnixNano() + int64(time.Since(systemClockStart))
}

// SystemClock returns the default Clock, backed by the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// fakeClock is a deterministic, monotonically-advancing Clock for tests.
// Each call to Now advances the virtual time by one tick before returning it,
// so that two events are never observed at the same instant.
type fakeClock struct {
	nanos int64
}

// NewFakeClock returns a Clock whose virtual time starts at start and
// advances by one nanosecond on every call, so the first Now() returns start
// plus one nanosecond.
func NewFakeClock(start time.Time) Clock {
	return &fakeClock{nanos: start.UnixNano()}
}

func (c *fakeClock) Now() int64 {
	return atomic.AddInt64(&c.nanos, 1)
}
