package timing

import (
	"testing"
	"time"
)

func TestElapsedMillis_Wraparound(t *testing.T) {
	start := uint32(0xFFFFFFF0)
	end := uint32(0x10)
	if got := ElapsedMillis(start, end); got != 0x20 {
		t.Fatalf("elapsed=%d want %d", got, 0x20)
	}
	if got := ElapsedMicros(start, end); got != 0x20 {
		t.Fatalf("elapsed=%d want %d", got, 0x20)
	}
}

func TestMillis_TracksDelay(t *testing.T) {
	a := Millis()
	Delay(50)
	b := Millis()
	d := ElapsedMillis(a, b)
	if d < 49 || d > 250 {
		t.Fatalf("elapsed=%dms want ~50ms", d)
	}
}

func TestMicros_TracksDelay(t *testing.T) {
	a := Micros()
	DelayMicroseconds(2000)
	b := Micros()
	d := ElapsedMicros(a, b)
	if d < 1999 || d > 100_000 {
		t.Fatalf("elapsed=%dus want ~2000us", d)
	}
}

func TestWait_ShortDelaySpinsAtLeastDuration(t *testing.T) {
	for _, d := range []time.Duration{1 * time.Microsecond, 20 * time.Microsecond, 99 * time.Microsecond} {
		start := Monotonic()
		Wait(d)
		if got := Monotonic() - start; got < d {
			t.Fatalf("Wait(%v) returned after %v", d, got)
		}
	}
}

func TestWait_LongDelaySleepsAtLeastDuration(t *testing.T) {
	d := 3 * time.Millisecond
	start := Monotonic()
	Wait(d)
	if got := Monotonic() - start; got < d {
		t.Fatalf("Wait(%v) returned after %v", d, got)
	}
}

func TestWait_NonPositiveReturnsImmediately(t *testing.T) {
	start := Monotonic()
	Wait(0)
	Wait(-time.Second)
	DelayMicroseconds(0)
	Delay(0)
	if got := Monotonic() - start; got > 50*time.Millisecond {
		t.Fatalf("zero delays took %v", got)
	}
}

func TestMonotonic_NonDecreasing(t *testing.T) {
	prev := Monotonic()
	for i := 0; i < 1000; i++ {
		now := Monotonic()
		if now < prev {
			t.Fatalf("monotonic went backwards: %v < %v", now, prev)
		}
		prev = now
	}
}
