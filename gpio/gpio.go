// Package gpio is the pin I/O adapter consumed by the software PWM core.
//
// A backend only has to set a pin's direction and level. Calls are
// synchronous and touch nothing but the named pin. Backends are safe for
// concurrent use on distinct pins; each PWM worker owns exactly one pin.
package gpio

import (
	"fmt"
	"strings"
)

type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

type Level int

const (
	Low Level = iota
	High
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Pins is the minimal interface the PWM core needs from a GPIO backend.
type Pins interface {
	SetDirection(pin int, d Direction) error
	SetLevel(pin int, l Level) error
}

// Device is an opened backend. Close is best-effort and returns every pin it
// configured to input.
type Device interface {
	Pins
	Close() error
}

type Config struct {
	// Backend selects the implementation: gpiocdev, rpio, periph or sim.
	Backend string
	// Chip is the gpiocdev chip name (e.g. "gpiochip0"). Empty searches all
	// chips for a line named GPIO<pin>.
	Chip string
	// Consumer labels requested lines (gpiocdev only).
	Consumer string
}

const (
	BackendGPIOCDev = "gpiocdev"
	BackendRPIO     = "rpio"
	BackendPeriph   = "periph"
	BackendSim      = "sim"
)

var (
	openGPIOCDevFn = openGPIOCDev
	openRPIOFn     = openRPIO
	openPeriphFn   = openPeriph
)

// Open returns the backend named by cfg.Backend.
func Open(cfg Config) (Device, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendGPIOCDev:
		if cfg.Consumer == "" {
			cfg.Consumer = "softpwm"
		}
		return openGPIOCDevFn(cfg.Chip, cfg.Consumer)
	case BackendRPIO:
		return openRPIOFn()
	case BackendPeriph:
		return openPeriphFn()
	case BackendSim:
		return NewSim(), nil
	default:
		return nil, fmt.Errorf("gpio: unknown backend %q", cfg.Backend)
	}
}
