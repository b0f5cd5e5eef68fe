package diag

import "testing"

func TestConsoleTrimsToCapacity(t *testing.T) {
	c := NewConsole(8)
	c.Write("0123456789")
	got := c.String()
	if len(got) != 8 {
		t.Fatalf("expected trimmed length 8, got %d (%q)", len(got), got)
	}
	if got != "23456789" {
		t.Errorf("expected tail retained, got %q", got)
	}
}

func TestConsoleReset(t *testing.T) {
	c := NewConsole(0)
	c.Write("hello")
	c.Reset()
	if c.String() != "" {
		t.Errorf("expected empty after reset, got %q", c.String())
	}
}

func TestBufferSnapshotOrderBeforeWrap(t *testing.T) {
	b := NewBuffer(4)
	b.Push(1)
	b.Push(2)
	snap := b.Snapshot()
	if len(snap) != 2 || snap[0] != 1 || snap[1] != 2 {
		t.Errorf("unexpected snapshot before wrap: %v", snap)
	}
}

func TestBufferSnapshotOrderAfterWrap(t *testing.T) {
	b := NewBuffer(4)
	for i := 1; i <= 6; i++ {
		b.Push(float32(i))
	}
	// capacity 4, pushed 1..6: ring now holds 3,4,5,6 in chronological order.
	snap := b.Snapshot()
	want := []float32{3, 4, 5, 6}
	if len(snap) != len(want) {
		t.Fatalf("expected length %d, got %d (%v)", len(want), len(snap), snap)
	}
	for i, w := range want {
		if snap[i] != w {
			t.Errorf("index %d: got %v want %v", i, snap[i], w)
		}
	}
}
