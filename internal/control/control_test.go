package control

import "testing"

func TestDialCarriesInitialAsValue(t *testing.T) {
	c := Dial("Cutoff", 20, 20000, 1000)
	if c.Kind != KindRotary {
		t.Errorf("expected KindRotary, got %v", c.Kind)
	}
	if c.Value != 1000 {
		t.Errorf("expected Value to mirror Initial, got %v", c.Value)
	}
}

func TestMenuTruncatesOptions(t *testing.T) {
	opts := make([]string, maxOptions+10)
	for i := range opts {
		opts[i] = "opt"
	}
	c := Menu("Waveform", opts, 0)
	if len(c.Options) != maxOptions {
		t.Errorf("expected options truncated to %d, got %d", maxOptions, len(c.Options))
	}
}

func TestControlsDropsBeyondCapacity(t *testing.T) {
	var cs Controls
	for i := 0; i < maxControls+5; i++ {
		cs.Add(Dial("d", 0, 1, 0))
	}
	if cs.Len() != maxControls {
		t.Errorf("expected Controls capped at %d, got %d", maxControls, cs.Len())
	}
}

func TestPresetsDropsBeyondCapacity(t *testing.T) {
	var ps Presets
	for i := 0; i < maxPresets+5; i++ {
		ps.Add(NewProgram("p"))
	}
	if ps.Len() != maxPresets {
		t.Errorf("expected Presets capped at %d, got %d", maxPresets, ps.Len())
	}
}

func TestNewProgramTruncatesValues(t *testing.T) {
	values := make([]float32, maxProgramLen+3)
	p := NewProgram("big", values...)
	if len(p.Values) != maxProgramLen {
		t.Errorf("expected values truncated to %d, got %d", maxProgramLen, len(p.Values))
	}
}

func TestTableSamplesAcrossUnitRange(t *testing.T) {
	table := NewTable(4, func(pos float64) float64 { return pos })
	want := []float64{0, 0.25, 0.5, 0.75}
	for i, w := range want {
		if got := table.At(i); got != w {
			t.Errorf("index %d: got %v want %v", i, got, w)
		}
	}
}
