package softpwm

import (
	"runtime"
	"time"

	"softpwm/gpio"
	"softpwm/timing"
)

// sleepSlice caps a single blocking wait inside a segment so that Stop
// is observed within one slice even for long marks or spaces.
const sleepSlice = 10 * time.Millisecond

// worker drives one pin. It is started without knowing its pin and receives
// it through the assign channel; ack is closed once the pin is captured.
type worker struct {
	m    *Manager
	quit chan struct{}
	done chan struct{}
}

func newWorker(m *Manager) *worker {
	return &worker{
		m:    m,
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (w *worker) stopping() bool {
	select {
	case <-w.quit:
		return true
	default:
		return false
	}
}

func (w *worker) run(assign <-chan int, ack chan<- struct{}) {
	defer close(w.done)

	// The goroutine never unlocks, so the runtime destroys the thread when
	// it exits and the realtime class cannot leak to other goroutines.
	runtime.LockOSThread()
	w.m.raisePriority()

	var pin int
	select {
	case pin = <-assign:
	case <-w.quit:
		return
	}
	if w.stopping() {
		return
	}
	s := w.m.reg.lookup(pin)
	rng, _ := s.load()
	close(ack)

	w.loop(pin, s, rng)
}

// loop emits one period per iteration: mark steps HIGH then range-mark steps
// LOW. mark is re-read every period so Write takes effect at the next
// period boundary. A zero-length segment skips its edge entirely.
func (w *worker) loop(pin int, s *slot, rng int) {
	pins := w.m.pins
	pulse := w.m.cfg.PulseTime
	for {
		if w.stopping() {
			return
		}
		_, mark := s.load()
		space := rng - mark

		if mark != 0 {
			_ = pins.SetLevel(pin, gpio.High)
			if !w.wait(time.Duration(mark) * pulse) {
				return
			}
		}
		if space != 0 {
			_ = pins.SetLevel(pin, gpio.Low)
			if !w.wait(time.Duration(space) * pulse) {
				return
			}
		}
	}
}

// wait blocks for d against a monotonic deadline, sleeping in slices of at
// most sleepSlice and finishing with the precise delay. It reports false if
// the worker was asked to quit.
func (w *worker) wait(d time.Duration) bool {
	if d <= sleepSlice {
		w.m.delay(d)
		return true
	}
	deadline := timing.Monotonic() + d
	for {
		if w.stopping() {
			return false
		}
		rem := deadline - timing.Monotonic()
		if rem <= 0 {
			return true
		}
		if rem > sleepSlice {
			w.m.delay(sleepSlice)
			continue
		}
		w.m.delay(rem)
		return true
	}
}
