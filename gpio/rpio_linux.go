//go:build linux

package gpio

import (
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"
)

// rpioPins drives BCM GPIOs through /dev/gpiomem register access. It is much
// cheaper per edge than the character device, but only works on Pi 1-4.
type rpioPins struct {
	mu   sync.Mutex
	used map[int]struct{}
}

func openRPIO() (Device, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("gpio: rpio open: %w", err)
	}
	return &rpioPins{used: make(map[int]struct{})}, nil
}

func (p *rpioPins) SetDirection(pin int, d Direction) error {
	if pin < 0 || pin > 53 {
		return fmt.Errorf("gpio: rpio pin %d out of range", pin)
	}
	p.mu.Lock()
	p.used[pin] = struct{}{}
	p.mu.Unlock()
	if d == Output {
		rpio.Pin(pin).Output()
	} else {
		rpio.Pin(pin).Input()
	}
	return nil
}

func (p *rpioPins) SetLevel(pin int, l Level) error {
	if l == High {
		rpio.Pin(pin).High()
	} else {
		rpio.Pin(pin).Low()
	}
	return nil
}

func (p *rpioPins) Close() error {
	p.mu.Lock()
	for pin := range p.used {
		rpio.Pin(pin).Low()
		rpio.Pin(pin).Input()
	}
	p.used = make(map[int]struct{})
	p.mu.Unlock()
	return rpio.Close()
}
