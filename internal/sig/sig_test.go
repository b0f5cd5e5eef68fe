package sig

import "testing"

func TestPitchFrequencyRoundTrip(t *testing.T) {
	for note := 0; note <= 127; note++ {
		p := Pitch(note)
		got := p.ToFrequency().ToPitch()
		if diff := float64(got) - float64(p); diff > 1e-3 || diff < -1e-3 {
			t.Errorf("pitch %d round trip: got %v", note, got)
		}
	}
}

func TestAmplitudeDBRoundTrip(t *testing.T) {
	cases := []Amplitude{0.001, 0.01, 0.1, 0.5, 1, 2, 10}
	for _, a := range cases {
		got := a.ToDB().ToAmplitude()
		if diff := float64(got-a) / float64(a); diff > 1e-4 || diff < -1e-4 {
			t.Errorf("amplitude %v round trip: got %v", a, got)
		}
	}
}

func TestA4Reference(t *testing.T) {
	f := Pitch(69).ToFrequency()
	if f < 439.999 || f > 440.001 {
		t.Errorf("A4 should be 440Hz, got %v", f)
	}
}

func TestParamAddWrapped(t *testing.T) {
	p := Param(6.0)
	const twoPi = 2 * 3.14159265358979
	got := p.AddWrapped(1.0, twoPi)
	if got < 0 || got >= twoPi {
		t.Errorf("expected wrapped value in [0, 2pi), got %v", got)
	}
}

func TestSignals2LaneWise(t *testing.T) {
	a := Signals2{L: 1, R: 2}
	b := Signals2{L: 0.5, R: 0.5}
	got := a.Add(b)
	if got.L != 1.5 || got.R != 2.5 {
		t.Errorf("unexpected add result: %+v", got)
	}
	got = a.Mul(b)
	if got.L != 0.5 || got.R != 1 {
		t.Errorf("unexpected mul result: %+v", got)
	}
}
