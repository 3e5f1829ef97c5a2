// Package rtsched raises the scheduling class of the calling OS thread.
//
// Callers that want the elevated priority to stay with a goroutine must hold
// runtime.LockOSThread for as long as the goroutine runs.
package rtsched

import "errors"

// ErrUnsupported is returned on platforms without a realtime scheduling class.
var ErrUnsupported = errors.New("rtsched: realtime scheduling unsupported on this platform")

// SetRealtimePriority moves the calling thread into the round-robin realtime
// class at pri. Requests above the OS maximum are capped to the maximum and
// requests below the minimum are raised to the minimum.
//
// Failure (usually missing CAP_SYS_NICE) leaves the thread in its current
// class; callers are expected to treat that as degraded timing, not an error.
func SetRealtimePriority(pri int) error {
	return setRealtimePriority(pri)
}

// PriorityRange reports the valid priorities of the round-robin class.
func PriorityRange() (lo, hi int, err error) {
	return priorityRange()
}

func clampPriority(pri, lo, hi int) int {
	if pri > hi {
		return hi
	}
	if pri < lo {
		return lo
	}
	return pri
}
