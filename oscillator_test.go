package klangkit

import (
	"math"
	"testing"

	"github.com/gosynth/klangkit/internal/wavetable"
)

func TestOscSineProducesBoundedOutput(t *testing.T) {
	o := NewSine()
	o.SetFrequency(440, 48000)
	for i := 0; i < 100; i++ {
		v := o.Output()
		if v < -1.01 || v > 1.01 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestOscFastSineMatchesNaiveSineRoughly(t *testing.T) {
	fast := NewFastSine()
	naive := NewSine()
	fast.SetFrequency(100, 48000)
	naive.SetFrequency(100, 48000)
	for i := 0; i < 50; i++ {
		f := fast.Output()
		n := naive.Output()
		if math.Abs(float64(f-n)) > 0.05 {
			t.Errorf("sample %d: fast %v vs naive %v diverged", i, f, n)
		}
	}
}

func TestOscWavetableWrapsWrappedTable(t *testing.T) {
	table := wavetable.New(8)
	table.FillFunc(func(phase float64) float32 { return float32(phase) })
	o := NewWavetableOsc(table)
	o.SetFrequency(1, 8)
	// just exercise a full period without panicking
	for i := 0; i < 8; i++ {
		o.Output()
	}
}

func TestOscOsmSawStaysInRange(t *testing.T) {
	o := NewOsmSaw()
	o.SetFrequency(220, 48000)
	for i := 0; i < 200; i++ {
		v := o.Output()
		if v < -1.5 || v > 1.5 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}
