package delay

import "testing"

func TestTapIntExactOffset(t *testing.T) {
	l := New(256)
	l.Write(1) // sample 0
	for i := 1; i <= 256; i++ {
		l.Write(0)
	}
	// after writing sample 0 and 256 more zeros, "now" is 257 samples
	// after the impulse; the impulse is 256 samples in the past relative
	// to the last write, i.e. TapInt(256) should read it back (capacity
	// 256 supports exactly this).
	got := l.TapInt(256)
	if got != 1 {
		t.Errorf("expected 1.0 at the impulse's delay offset, got %v", got)
	}
	for _, d := range []int{0, 1, 100, 255} {
		if v := l.TapInt(d); v != 0 {
			t.Errorf("expected 0 at offset %d, got %v", d, v)
		}
	}
}

func TestTapRejectsOverCapacity(t *testing.T) {
	l := New(64)
	if _, err := l.Tap(65); err == nil {
		t.Error("expected error when tapping beyond capacity")
	}
}

func TestTapFractionalInterpolates(t *testing.T) {
	l := New(16)
	l.Write(0)
	l.Write(1)
	l.Write(0)
	got, err := l.Tap(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got < 0.4 || got > 0.6 {
		t.Errorf("expected interpolated value near 0.5, got %v", got)
	}
}
