// Package timing provides the monotonic counters and delay primitives used by
// the software PWM workers. Counters are relative to an epoch captured when
// the package is initialized and are truncated to 32 bits, so they wrap:
// Millis after ~49.7 days, Micros after ~71.6 minutes. Use the Elapsed helpers
// (unsigned subtraction) for durations across calls.
package timing

import "time"

// PreciseThreshold is the delay below which Wait busy-polls the monotonic
// clock instead of sleeping. OS sleep calls carry roughly 80-130µs of
// overhead on small ARM boards, so shorter delays cannot be met by sleeping.
// Busy-polling burns a full CPU for the duration of the wait.
const PreciseThreshold = 100 * time.Microsecond

var epoch = monotonic()

// Monotonic returns the time elapsed since the package epoch. It is never
// affected by wall-clock changes.
func Monotonic() time.Duration {
	return monotonic() - epoch
}

// Millis returns milliseconds since the epoch, wrapping at 2^32.
func Millis() uint32 {
	return uint32(Monotonic() / time.Millisecond)
}

// Micros returns microseconds since the epoch, wrapping at 2^32.
func Micros() uint32 {
	return uint32(Monotonic() / time.Microsecond)
}

// ElapsedMillis returns end-start for two Millis readings, correct across a
// single wraparound.
func ElapsedMillis(start, end uint32) uint32 { return end - start }

// ElapsedMicros returns end-start for two Micros readings, correct across a
// single wraparound.
func ElapsedMicros(start, end uint32) uint32 { return end - start }

// Delay blocks the calling goroutine for approximately ms milliseconds using
// the OS sleep primitive. Jitter is whatever the scheduler provides.
func Delay(ms uint) {
	if ms == 0 {
		return
	}
	sleep(time.Duration(ms) * time.Millisecond)
}

// DelayMicroseconds blocks for us microseconds. See Wait.
func DelayMicroseconds(us uint) {
	Wait(time.Duration(us) * time.Microsecond)
}

// Wait blocks for d. Durations of at least PreciseThreshold are slept;
// shorter ones spin on the monotonic clock.
func Wait(d time.Duration) {
	switch {
	case d <= 0:
		return
	case d < PreciseThreshold:
		Spin(d)
	default:
		sleep(d)
	}
}

// Spin busy-polls the monotonic clock until d has elapsed.
func Spin(d time.Duration) {
	deadline := monotonic() + d
	for monotonic() < deadline {
	}
}
