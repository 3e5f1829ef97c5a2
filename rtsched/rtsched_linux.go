//go:build linux

package rtsched

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SCHED_RR from <sched.h>.
const schedRR = 2

func priorityRange() (int, int, error) {
	hi, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MAX, schedRR, 0, 0)
	if errno != 0 {
		return 0, 0, fmt.Errorf("rtsched: sched_get_priority_max: %w", errno)
	}
	lo, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MIN, schedRR, 0, 0)
	if errno != 0 {
		return 0, 0, fmt.Errorf("rtsched: sched_get_priority_min: %w", errno)
	}
	return int(lo), int(hi), nil
}

func setRealtimePriority(pri int) error {
	lo, hi, err := priorityRange()
	if err != nil {
		return err
	}
	attr := unix.SchedAttr{
		Policy:   schedRR,
		Priority: uint32(clampPriority(pri, lo, hi)),
	}
	// pid 0 is the calling thread, not the whole process.
	if err := unix.SchedSetAttr(0, &attr, 0); err != nil {
		return fmt.Errorf("rtsched: sched_setattr(SCHED_RR, %d): %w", attr.Priority, err)
	}
	return nil
}
