package gpio

import (
	"errors"
	"testing"
)

func TestSim_RecordsLevelsPerPin(t *testing.T) {
	s := NewSim()
	if err := s.SetDirection(5, Output); err != nil {
		t.Fatalf("SetDirection: %v", err)
	}
	_ = s.SetLevel(5, High)
	_ = s.SetLevel(6, High)
	_ = s.SetLevel(5, Low)

	if s.Direction(5) != Output {
		t.Fatalf("direction=%s want output", s.Direction(5))
	}
	if s.Level(5) != Low || s.Level(6) != High {
		t.Fatalf("levels=%s,%s want low,high", s.Level(5), s.Level(6))
	}
	ev := s.Events(5)
	if len(ev) != 2 {
		t.Fatalf("events=%d want 2", len(ev))
	}
	if ev[0].Level != High || ev[1].Level != Low {
		t.Fatalf("events=%v", ev)
	}
	if ev[1].At.Before(ev[0].At) {
		t.Fatalf("events out of order")
	}
}

func TestSim_FailDirection(t *testing.T) {
	s := NewSim()
	busy := errors.New("busy")
	s.FailDirection(3, busy)
	if err := s.SetDirection(3, Output); !errors.Is(err, busy) {
		t.Fatalf("err=%v want busy", err)
	}
	s.FailDirection(3, nil)
	if err := s.SetDirection(3, Output); err != nil {
		t.Fatalf("err=%v want nil", err)
	}
}

func TestSim_EventLogIsBounded(t *testing.T) {
	s := NewSim()
	s.maxEvents = 10
	for i := 0; i < 25; i++ {
		_ = s.SetLevel(1, Level(i%2))
	}
	if n := len(s.Events(1)); n > 10 {
		t.Fatalf("events=%d want <= 10", n)
	}
	if s.Level(1) != Low {
		t.Fatalf("level=%s want low", s.Level(1))
	}
}

func TestSim_CloseRevertsToInput(t *testing.T) {
	s := NewSim()
	_ = s.SetDirection(2, Output)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Direction(2) != Input {
		t.Fatalf("direction=%s want input", s.Direction(2))
	}
	if err := s.SetLevel(2, High); err == nil {
		t.Fatalf("expected error after Close")
	}
}
