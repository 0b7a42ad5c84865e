package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is the package time source. Tests freeze it with SetClock so that
// page timestamps and marker samples are reproducible.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}
