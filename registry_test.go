package softpwm

import "testing"

func TestRegistryLookup_Bounds(t *testing.T) {
	r := &registry{}
	for _, pin := range []int{-1, MaxPins, MaxPins + 10} {
		if r.lookup(pin) != nil {
			t.Fatalf("lookup(%d) should be nil", pin)
		}
	}
	if r.lookup(0) == nil || r.lookup(MaxPins-1) == nil {
		t.Fatalf("lookup at bounds should succeed")
	}
}

func TestSlotWrite_ClampsToRange(t *testing.T) {
	var s slot
	s.activate(100, 0)
	cases := []struct {
		in, want int
	}{
		{in: -5, want: 0},
		{in: 0, want: 0},
		{in: 42, want: 42},
		{in: 100, want: 100},
		{in: 250, want: 100},
	}
	for _, tc := range cases {
		s.write(tc.in)
		if _, got := s.load(); got != tc.want {
			t.Fatalf("write(%d) stored %d want %d", tc.in, got, tc.want)
		}
	}
}

func TestSlotWrite_FreeSlotStoresZero(t *testing.T) {
	var s slot
	s.write(77)
	if _, got := s.load(); got != 0 {
		t.Fatalf("mark=%d want 0", got)
	}
}

func TestSlotActivate_ClampsInitialAndReleaseZeroes(t *testing.T) {
	var s slot
	s.activate(50, 80)
	if rng, mark := s.load(); rng != 50 || mark != 50 {
		t.Fatalf("state=(%d,%d) want (50,50)", rng, mark)
	}
	s.release()
	if rng, mark := s.load(); rng != 0 || mark != 0 {
		t.Fatalf("state=(%d,%d) want (0,0)", rng, mark)
	}
}

func TestPackUnpack_MaxValues(t *testing.T) {
	const top = 1<<31 - 1
	rng, mark := unpack(pack(top, top-1))
	if rng != top || mark != top-1 {
		t.Fatalf("unpack=(%d,%d) want (%d,%d)", rng, mark, top, top-1)
	}
}
