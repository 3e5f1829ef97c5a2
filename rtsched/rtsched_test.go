package rtsched

import (
	"runtime"
	"testing"
)

func TestClampPriority(t *testing.T) {
	cases := []struct {
		pri, want int
	}{
		{pri: 50, want: 50},
		{pri: 1, want: 1},
		{pri: 99, want: 99},
		{pri: 150, want: 99},
		{pri: 0, want: 1},
		{pri: -5, want: 1},
	}
	for _, tc := range cases {
		if got := clampPriority(tc.pri, 1, 99); got != tc.want {
			t.Fatalf("clampPriority(%d)=%d want %d", tc.pri, got, tc.want)
		}
	}
}

func TestPriorityRange_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux only")
	}
	lo, hi, err := PriorityRange()
	if err != nil {
		t.Fatalf("PriorityRange: %v", err)
	}
	if lo < 1 || hi < lo {
		t.Fatalf("range=[%d,%d] looks wrong", lo, hi)
	}
}

func TestSetRealtimePriority_NeverPanics(t *testing.T) {
	// Run on a throwaway locked thread so a successful elevation does not
	// leak to other tests; the thread is destroyed when the goroutine exits.
	done := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		done <- SetRealtimePriority(1000)
	}()
	err := <-done
	if runtime.GOOS != "linux" && err == nil {
		t.Fatalf("expected error on %s", runtime.GOOS)
	}
}
