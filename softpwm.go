// Package softpwm emulates PWM on plain digital outputs by toggling each pin
// from its own goroutine, locked to a dedicated OS thread.
//
// A channel's period is range * PulseTime, so its frequency is
// 1s / (range * PulseTime): range 100 at the default 100µs pulse time gives
// 100Hz. Raise the frequency by shrinking the pulse time (steps under
// 100µs are busy-waited and cost a full CPU per channel) or by shrinking the
// range (fewer duty levels: only range+1 are representable). There is no
// frequency setter; the tradeoff is left to the caller.
//
// Pins are independent. No phase relationship between channels is kept.
package softpwm

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"softpwm/gpio"
	"softpwm/rtsched"
	"softpwm/timing"
)

const (
	// PulseTime is the default duration of one resolution step.
	PulseTime = 100 * time.Microsecond

	// DefaultPriority is the SCHED_RR priority requested by workers.
	DefaultPriority = 90

	// NoPriority disables realtime elevation for workers.
	NoPriority = -1

	// DefaultHandshakeTimeout bounds how long Create waits for a new worker.
	DefaultHandshakeTimeout = time.Second
)

var (
	setPriorityFn = rtsched.SetRealtimePriority
	delayFn       = timing.Wait
)

// Config tunes a Manager. The zero value selects every default.
type Config struct {
	// PulseTime is the length of one resolution step. Zero means PulseTime.
	PulseTime time.Duration
	// Priority is the realtime priority requested by each worker; requests
	// above the OS maximum are capped. Zero means DefaultPriority and
	// NoPriority leaves workers in the normal class.
	Priority int
	// HandshakeTimeout bounds how long Create waits for a new worker to
	// acknowledge its pin. Zero means DefaultHandshakeTimeout.
	HandshakeTimeout time.Duration
}

// Manager owns the channel registry and the worker of every active channel.
// Create, Write and Stop may be called from any goroutine.
type Manager struct {
	pins gpio.Pins
	cfg  Config
	reg  *registry

	setPriority func(int) error
	delay       func(time.Duration)
	warnOnce    sync.Once
}

// New returns a Manager driving pins, with zero Config fields defaulted.
func New(pins gpio.Pins, cfg Config) *Manager {
	if cfg.PulseTime <= 0 {
		cfg.PulseTime = PulseTime
	}
	if cfg.Priority == 0 {
		cfg.Priority = DefaultPriority
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = DefaultHandshakeTimeout
	}
	return &Manager{
		pins:        pins,
		cfg:         cfg,
		reg:         &registry{},
		setPriority: setPriorityFn,
		delay:       delayFn,
	}
}

// Period returns the PWM period of a channel with the given range.
func Period(rng int, pulse time.Duration) time.Duration {
	return time.Duration(rng) * pulse
}

// Period returns the period of a channel with range rng under this manager.
func (m *Manager) Period(rng int) time.Duration {
	return Period(rng, m.cfg.PulseTime)
}

// Create starts software PWM on pin with the given range, driving the pin
// LOW as an output and publishing initialValue (clamped to [0, rng]) before
// the worker starts. It returns once the worker has captured its pin.
func (m *Manager) Create(pin, initialValue, rng int) error {
	s := m.reg.lookup(pin)
	if s == nil {
		return fmt.Errorf("%w: %d", ErrInvalidPin, pin)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, _ := s.load(); cur != 0 {
		return fmt.Errorf("%w: pin %d", ErrChannelActive, pin)
	}
	if rng <= 0 || rng > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrInvalidRange, rng)
	}

	if err := m.pins.SetDirection(pin, gpio.Output); err != nil {
		return fmt.Errorf("%w: pin %d: %w", ErrResourceExhausted, pin, err)
	}
	if err := m.pins.SetLevel(pin, gpio.Low); err != nil {
		return fmt.Errorf("%w: pin %d: %w", ErrResourceExhausted, pin, err)
	}

	s.activate(rng, initialValue)

	w, err := m.startWorker(pin)
	if err != nil {
		s.release()
		_ = m.pins.SetLevel(pin, gpio.Low)
		return err
	}
	s.w = w
	return nil
}

// startWorker launches a worker and hands it pin, blocking until the worker
// acknowledges or the handshake times out.
func (m *Manager) startWorker(pin int) (*worker, error) {
	w := newWorker(m)
	assign := make(chan int, 1)
	ack := make(chan struct{})
	go w.run(assign, ack)
	assign <- pin

	t := time.NewTimer(m.cfg.HandshakeTimeout)
	defer t.Stop()
	select {
	case <-ack:
		return w, nil
	case <-w.done:
		return nil, fmt.Errorf("%w: pin %d: worker exited during handshake", ErrWorkerStart, pin)
	case <-t.C:
		// The worker may have acknowledged in the meantime and already be
		// driving the pin; join it so the caller's rollback comes last.
		close(w.quit)
		<-w.done
		return nil, fmt.Errorf("%w: pin %d: no acknowledgement after %s", ErrWorkerStart, pin, m.cfg.HandshakeTimeout)
	}
}

func (m *Manager) raisePriority() {
	if m.cfg.Priority < 0 {
		return
	}
	if err := m.setPriority(m.cfg.Priority); err != nil {
		m.warnOnce.Do(func() {
			log.Printf("softpwm: realtime priority unavailable, timing is best-effort: %v", err)
		})
	}
}

// Write sets the duty value of pin, clamped to [0, range]. It is ignored for
// pins outside [0, MaxPins) and has no effect on inactive pins.
func (m *Manager) Write(pin, value int) {
	if s := m.reg.lookup(pin); s != nil {
		s.write(value)
	}
}

// Stop cancels the worker on pin, waits for it to exit, frees the slot and
// drives the pin LOW. Stop on an invalid or inactive pin does nothing.
func (m *Manager) Stop(pin int) {
	s := m.reg.lookup(pin)
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rng, _ := s.load(); rng == 0 {
		return
	}
	if w := s.w; w != nil {
		close(w.quit)
		<-w.done
		s.w = nil
	}
	s.release()
	_ = m.pins.SetLevel(pin, gpio.Low)
}

// Close stops every active channel. The pin backend stays open.
func (m *Manager) Close() {
	for pin := 0; pin < MaxPins; pin++ {
		if m.Active(pin) {
			m.Stop(pin)
		}
	}
}

// Active reports whether pin has a running channel.
func (m *Manager) Active(pin int) bool {
	s := m.reg.lookup(pin)
	if s == nil {
		return false
	}
	rng, _ := s.load()
	return rng != 0
}

// Value returns the current duty value of pin, or 0 if inactive.
func (m *Manager) Value(pin int) int {
	s := m.reg.lookup(pin)
	if s == nil {
		return 0
	}
	_, mark := s.load()
	return mark
}

// Range returns the range of pin, or 0 if inactive.
func (m *Manager) Range(pin int) int {
	s := m.reg.lookup(pin)
	if s == nil {
		return 0
	}
	rng, _ := s.load()
	return rng
}
