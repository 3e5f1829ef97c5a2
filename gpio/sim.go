package gpio

import (
	"fmt"
	"sync"
	"time"
)

// Event is one SetLevel call observed by a Sim.
type Event struct {
	Pin   int
	Level Level
	At    time.Time
}

// Sim is an in-memory backend. It records every level write so tests (and
// dry runs without hardware) can inspect the produced waveform.
type Sim struct {
	mu        sync.Mutex
	dir       map[int]Direction
	level     map[int]Level
	events    []Event
	maxEvents int
	failDir   map[int]error
	closed    bool
}

// DefaultSimEvents bounds the event log; older events are dropped first.
const DefaultSimEvents = 1 << 16

func NewSim() *Sim {
	return &Sim{
		dir:       make(map[int]Direction),
		level:     make(map[int]Level),
		failDir:   make(map[int]error),
		maxEvents: DefaultSimEvents,
	}
}

// FailDirection makes subsequent SetDirection calls on pin return err.
// A nil err clears the failure.
func (s *Sim) FailDirection(pin int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failDir, pin)
		return
	}
	s.failDir[pin] = err
}

func (s *Sim) SetDirection(pin int, d Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("gpio: sim closed")
	}
	if err := s.failDir[pin]; err != nil {
		return err
	}
	s.dir[pin] = d
	return nil
}

func (s *Sim) SetLevel(pin int, l Level) error {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("gpio: sim closed")
	}
	s.level[pin] = l
	if len(s.events) >= s.maxEvents {
		n := copy(s.events, s.events[len(s.events)/2:])
		s.events = s.events[:n]
	}
	s.events = append(s.events, Event{Pin: pin, Level: l, At: now})
	return nil
}

// Level returns the last level written to pin (Low if never written).
func (s *Sim) Level(pin int) Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level[pin]
}

// Direction returns the configured direction of pin (Input if never set).
func (s *Sim) Direction(pin int) Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir[pin]
}

// Events returns a copy of the recorded level writes for pin.
func (s *Sim) Events(pin int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if e.Pin == pin {
			out = append(out, e)
		}
	}
	return out
}

func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for pin := range s.dir {
		s.dir[pin] = Input
	}
	s.closed = true
	return nil
}
