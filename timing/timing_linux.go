//go:build linux

package timing

import (
	"time"

	"golang.org/x/sys/unix"
)

var processStart = time.Now()

func monotonic() time.Duration {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// time.Since uses the runtime's monotonic reading.
		return time.Since(processStart)
	}
	return time.Duration(ts.Nano())
}

// sleep calls nanosleep directly and resumes with the remaining time when
// interrupted; the Go runtime delivers preemption signals that would
// otherwise cut sleeps short.
func sleep(d time.Duration) {
	ts := unix.NsecToTimespec(d.Nanoseconds())
	for {
		var rem unix.Timespec
		err := unix.Nanosleep(&ts, &rem)
		if err != unix.EINTR {
			return
		}
		ts = rem
	}
}
