//go:build !linux

package gpio

import "fmt"

func openRPIO() (Device, error) {
	return nil, fmt.Errorf("gpio: rpio unsupported on this platform")
}
