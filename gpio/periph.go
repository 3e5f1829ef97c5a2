package gpio

import (
	"fmt"
	"sync"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// periphPins resolves pins by name ("GPIO<n>") through the periph.io
// registry and caches the handles.
type periphPins struct {
	mu   sync.RWMutex
	pins map[int]pgpio.PinIO
}

func openPeriph() (Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio: periph host init: %w", err)
	}
	return &periphPins{pins: make(map[int]pgpio.PinIO)}, nil
}

func (p *periphPins) resolve(pin int) (pgpio.PinIO, error) {
	p.mu.RLock()
	h, ok := p.pins[pin]
	p.mu.RUnlock()
	if ok {
		return h, nil
	}

	name := fmt.Sprintf("GPIO%d", pin)
	h = gpioreg.ByName(name)
	if h == nil {
		return nil, fmt.Errorf("gpio: pin %d (%s) not found", pin, name)
	}
	p.mu.Lock()
	p.pins[pin] = h
	p.mu.Unlock()
	return h, nil
}

func (p *periphPins) SetDirection(pin int, d Direction) error {
	h, err := p.resolve(pin)
	if err != nil {
		return err
	}
	if d == Output {
		err = h.Out(pgpio.Low)
	} else {
		err = h.In(pgpio.PullNoChange, pgpio.NoEdge)
	}
	if err != nil {
		return fmt.Errorf("gpio: set pin %d to %s: %w", pin, d, err)
	}
	return nil
}

func (p *periphPins) SetLevel(pin int, l Level) error {
	h, err := p.resolve(pin)
	if err != nil {
		return err
	}
	lv := pgpio.Low
	if l == High {
		lv = pgpio.High
	}
	return h.Out(lv)
}

func (p *periphPins) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for pin, h := range p.pins {
		_ = h.Out(pgpio.Low)
		_ = h.In(pgpio.PullNoChange, pgpio.NoEdge)
		delete(p.pins, pin)
	}
	return nil
}
