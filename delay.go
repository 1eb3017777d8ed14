package hs3003

import "time"

// Delayer provides the blocking settle wait between triggering a
// measurement and reading it back. It is assumed infallible.
type Delayer interface {
	DelayMicroseconds(us uint32)
}

// DelayFunc adapts a plain function to the Delayer interface.
type DelayFunc func(us uint32)

func (f DelayFunc) DelayMicroseconds(us uint32) { f(us) }

// TimerDelay sleeps on the calling goroutine. This is the provider used
// by the convenience Get* methods.
type TimerDelay struct{}

func (TimerDelay) DelayMicroseconds(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// NoopDelay skips the wait entirely. Intended for tests and simulated
// transports; using it against real hardware violates the sensor's
// conversion timing.
type NoopDelay struct{}

func (NoopDelay) DelayMicroseconds(uint32) {}
