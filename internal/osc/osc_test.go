package osc

import (
	"math"
	"math/rand"
	"testing"
)

func TestFastSineMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		angle := float32(rng.Float64() * 2 * math.Pi)
		got := fastSin(angle)
		want := math.Sin(float64(angle))
		if diff := math.Abs(float64(got) - want); diff > 1e-3 {
			t.Fatalf("fastSin(%v) = %v, want ~%v (diff %v)", angle, got, want, diff)
		}
	}
}

func TestOSMSawMeanMagnitude(t *testing.T) {
	saw := Saw()
	saw.SetFrequency(200, 48000)
	var sum float64
	const n = 480
	for i := 0; i < n; i++ {
		v := saw.Process()
		sum += math.Abs(float64(v))
	}
	mean := sum / n
	if mean < 0.3 || mean > 0.7 {
		t.Errorf("expected sample-mean magnitude roughly near 0.5, got %v", mean)
	}
}

func TestPhaseAngleRange(t *testing.T) {
	var p Phase
	for i := 0; i < 1000; i++ {
		a := p.Angle()
		if a < 0 || a >= 2*math.Pi {
			t.Fatalf("angle out of range: %v", a)
		}
		p = p.Add(Increment(12345679))
	}
}

func TestIncrementForProportionalToFrequency(t *testing.T) {
	inc1 := IncrementFor(440, 48000)
	inc2 := IncrementFor(880, 48000)
	if inc2 <= inc1 {
		t.Errorf("doubling frequency should increase increment: %v vs %v", inc1, inc2)
	}
}
