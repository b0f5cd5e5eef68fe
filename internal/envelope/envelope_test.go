package envelope

import (
	"math"
	"testing"
)

func TestLinearPointsAtMatchesIdentity(t *testing.T) {
	e := New([]Point{{0, 0}, {1, 1}}, 48000)
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := e.At(tt)
		if math.Abs(got-tt) > 1e-9 {
			t.Errorf("At(%v) = %v, want %v", tt, got, tt)
		}
	}
}

func TestADSRRelease(t *testing.T) {
	const fs = 48000.0
	a := NewADSR(0.01, 0.01, 0.5, 0.1, fs)

	releaseAt := int(0.1 * fs)
	sample := int(0.099 * fs)
	var out float64
	for i := 0; i <= sample; i++ {
		out = a.Advance()
	}
	if out < 0.499 {
		t.Errorf("expected sustain near 0.5 at t=0.099s, got %v", out)
	}

	for i := sample + 1; i < releaseAt; i++ {
		a.Advance()
	}
	a.Release(0, 0)

	stopAt := int(0.205 * fs)
	for i := releaseAt; i < stopAt; i++ {
		out = a.Advance()
	}
	if math.Abs(out) > 1e-2 {
		t.Errorf("expected near-zero output by t=0.205s, got %v", out)
	}
	if a.Stage() != Off {
		t.Errorf("expected stage Off by t=0.205s, got %v", a.Stage())
	}
}

func TestEnvelopeLoopHoldsSustain(t *testing.T) {
	e := New([]Point{{0, 0}, {0.001, 1}, {0.002, 0.5}}, 48000)
	e.SetLoop(2, 2)
	for i := 0; i < 10000; i++ {
		e.Advance()
	}
	if e.Stage() != Sustain {
		t.Errorf("expected sustain stage to hold under loop, got %v", e.Stage())
	}
}

func TestDxRampReachesTarget(t *testing.T) {
	var r DxRamp
	r.SetValue(0)
	r.SetTarget(1, 40)
	for i := 0; i < 200000 && r.Active(); i++ {
		r.Advance()
	}
	if r.Active() {
		t.Error("expected DxRamp to settle at target")
	}
	if math.Abs(r.Value()-1) > 1e-6 {
		t.Errorf("expected value 1, got %v", r.Value())
	}
}
