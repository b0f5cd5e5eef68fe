package klangkit

import "testing"

func TestEffectProcessBufferAppliesPerFrame(t *testing.T) {
	e := NewEffect(func(in Signals2) Signals2 { return in.Scale(2) })
	buf := []Signals2{{L: 1, R: 1}, {L: 2, R: 2}}
	e.ProcessBuffer(buf)

	if buf[0].L != 2 || buf[1].L != 4 {
		t.Errorf("unexpected buffer after process: %v", buf)
	}
}

func TestEffectProcessInterleaved(t *testing.T) {
	e := NewEffect(func(in Signals2) Signals2 { return Signals2{L: in.L + 1, R: in.R - 1} })
	buf := []float32{0, 0}
	e.ProcessInterleaved(buf)

	if buf[0] != 1 || buf[1] != -1 {
		t.Errorf("unexpected interleaved buffer: %v", buf)
	}
}

func TestChainAppliesStagesInOrder(t *testing.T) {
	double := NewEffect(func(in Signals2) Signals2 { return in.Scale(2) })
	addOne := NewEffect(func(in Signals2) Signals2 { return Signals2{L: in.L + 1, R: in.R + 1} })
	chain := NewChain(double, addOne)

	buf := []float32{1, 1}
	chain.ProcessInterleaved(buf)

	// (1*2)+1 = 3
	if buf[0] != 3 || buf[1] != 3 {
		t.Errorf("expected chain result 3, got %v", buf)
	}
}
