//go:build !linux

package gpio

import "fmt"

func openGPIOCDev(chip, consumer string) (Device, error) {
	return nil, fmt.Errorf("gpio: gpiocdev unsupported on this platform")
}
