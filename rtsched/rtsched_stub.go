//go:build !linux

package rtsched

func priorityRange() (int, int, error) {
	return 0, 0, ErrUnsupported
}

func setRealtimePriority(pri int) error {
	return ErrUnsupported
}
