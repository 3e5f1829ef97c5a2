//go:build linux

package gpio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

// cdevPins drives lines through the Linux GPIO character device. Lines are
// requested lazily on first SetDirection and held until Close.
type cdevPins struct {
	chipName string
	consumer string

	mu    sync.RWMutex
	chips map[string]*gpiocdev.Chip
	lines map[int]*gpiocdev.Line
}

var devDir = "/dev"

func openGPIOCDev(chip, consumer string) (Device, error) {
	p := &cdevPins{
		chipName: chip,
		consumer: consumer,
		chips:    make(map[string]*gpiocdev.Chip),
		lines:    make(map[int]*gpiocdev.Line),
	}
	if chip != "" {
		c, err := gpiocdev.NewChip(chip)
		if err != nil {
			return nil, fmt.Errorf("gpio: open chip %s: %w", chip, err)
		}
		p.chips[chip] = c
	}
	return p, nil
}

// chipCandidates lists gpiochip devices, preferring gpiochip0 and gpiochip4
// (Pi 5 kernels can expose the header on either).
func chipCandidates() []string {
	out := []string{"gpiochip0", "gpiochip4"}
	entries, _ := os.ReadDir(devDir)
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "gpiochip") && name != "gpiochip0" && name != "gpiochip4" {
			out = append(out, name)
		}
	}
	return out
}

// locate returns the chip and offset for pin. With a fixed chip the pin is
// the line offset; otherwise chips are searched for a line named GPIO<pin>.
// Must be called with mu held.
func (p *cdevPins) locate(pin int) (*gpiocdev.Chip, int, error) {
	if p.chipName != "" {
		return p.chips[p.chipName], pin, nil
	}
	lineName := fmt.Sprintf("GPIO%d", pin)
	for _, name := range chipCandidates() {
		c := p.chips[name]
		if c == nil {
			var err error
			c, err = gpiocdev.NewChip(filepath.Join(devDir, name))
			if err != nil {
				continue
			}
			p.chips[name] = c
		}
		offset, err := c.FindLine(lineName)
		if err != nil {
			continue
		}
		return c, offset, nil
	}
	return nil, 0, fmt.Errorf("gpio: line %q not found", lineName)
}

func (p *cdevPins) SetDirection(pin int, d Direction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var opt gpiocdev.LineConfigOption = gpiocdev.AsInput
	if d == Output {
		opt = gpiocdev.AsOutput(0)
	}
	if l := p.lines[pin]; l != nil {
		if err := l.Reconfigure(opt); err != nil {
			return fmt.Errorf("gpio: reconfigure line %d as %s: %w", pin, d, err)
		}
		return nil
	}

	c, offset, err := p.locate(pin)
	if err != nil {
		return err
	}
	var reqOpt gpiocdev.LineReqOption = gpiocdev.AsInput
	if d == Output {
		reqOpt = gpiocdev.AsOutput(0)
	}
	l, err := c.RequestLine(offset, reqOpt, gpiocdev.WithConsumer(p.consumer))
	if err != nil {
		return fmt.Errorf("gpio: request line %d: %w", pin, err)
	}
	p.lines[pin] = l
	return nil
}

func (p *cdevPins) SetLevel(pin int, lv Level) error {
	p.mu.RLock()
	l := p.lines[pin]
	p.mu.RUnlock()
	if l == nil {
		return fmt.Errorf("gpio: line %d not requested", pin)
	}
	return l.SetValue(int(lv))
}

func (p *cdevPins) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for pin, l := range p.lines {
		_ = l.SetValue(0)
		_ = l.Reconfigure(gpiocdev.AsInput)
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("gpio: close line %d: %w", pin, err))
		}
		delete(p.lines, pin)
	}
	for name, c := range p.chips {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("gpio: close chip %s: %w", name, err))
		}
		delete(p.chips, name)
	}
	return errors.Join(errs...)
}
