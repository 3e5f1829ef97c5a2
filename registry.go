package softpwm

import (
	"sync"
	"sync/atomic"
)

// MaxPins bounds the pin identifiers the registry can hold: [0, MaxPins).
const MaxPins = 255

// slot is the per-pin channel record. A range of 0 marks the slot free.
//
// state packs the range (high 32 bits) and the mark (low 32 bits) so readers
// always see a mark that was clamped against the range stored with it.
type slot struct {
	// mu serializes Create and Stop on this pin.
	mu sync.Mutex

	state atomic.Uint64

	// w is guarded by mu and non-nil only while the slot is active.
	w *worker
}

type registry struct {
	slots [MaxPins]slot
}

func (r *registry) lookup(pin int) *slot {
	if pin < 0 || pin >= MaxPins {
		return nil
	}
	return &r.slots[pin]
}

func pack(rng, mark int) uint64 {
	return uint64(uint32(rng))<<32 | uint64(uint32(mark))
}

func unpack(v uint64) (rng, mark int) {
	return int(uint32(v >> 32)), int(uint32(v))
}

func (s *slot) load() (rng, mark int) {
	return unpack(s.state.Load())
}

// activate publishes a new range together with initial clamped into it.
func (s *slot) activate(rng, initial int) {
	s.state.Store(pack(rng, clamp(initial, 0, rng)))
}

// release frees the slot, zeroing range and mark together.
func (s *slot) release() {
	s.state.Store(0)
}

// write clamps v into [0, range] and publishes it. The compare-and-swap
// fails if the range changed underneath, in which case v is re-clamped
// against the new one. On a free slot the stored mark is 0.
func (s *slot) write(v int) {
	for {
		old := s.state.Load()
		rng, _ := unpack(old)
		if s.state.CompareAndSwap(old, pack(rng, clamp(v, 0, rng))) {
			return
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
