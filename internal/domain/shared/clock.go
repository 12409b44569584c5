package shared

import (
	"sync"
	"time"
)

var (
	clockMu sync.RWMutex
	clock   = time.Now
)

// Now is the domain clock, always in UTC.
func Now() time.Time {
	clockMu.RLock()
	defer clockMu.RUnlock()
	return clock().UTC()
}

// SetClock replaces the domain clock and returns a func restoring the previous one.
func SetClock(fn func() time.Time) (restore func()) {
	clockMu.Lock()
	prev := clock
	clock = fn
	clockMu.Unlock()
	return func() {
		clockMu.Lock()
		clock = prev
		clockMu.Unlock()
	}
}
