//go:build linux

package gpio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChipCandidates_PrefersPiChips(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"gpiochip2", "gpiochip0", "ttyS0", "gpiochip4"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	old := devDir
	devDir = dir
	t.Cleanup(func() { devDir = old })

	got := chipCandidates()
	want := []string{"gpiochip0", "gpiochip4", "gpiochip2"}
	if len(got) != len(want) {
		t.Fatalf("candidates=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidates=%v want %v", got, want)
		}
	}
}

func TestCDevPins_SetLevelBeforeRequest(t *testing.T) {
	p := &cdevPins{lines: nil}
	if err := p.SetLevel(7, High); err == nil {
		t.Fatalf("expected error for unrequested line")
	}
}
