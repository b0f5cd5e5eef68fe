// Package wavetable implements the core Wavetable primitive: an
// oscillator-filled, fixed-size buffer read back with fractional-index
// linear interpolation.
package wavetable

// Table holds one period of samples and a phase increment derived from a
// playback frequency. Filling samples the donor oscillator at fs = N Hz,
// matching the source library's operator=(oscillator) semantics.
type Table struct {
	samples   []float32
	increment float64 // phase delta per sample, in table indices
	position  float64
}

// New creates an empty table of the given size.
func New(size int) *Table {
	if size < 1 {
		size = 1
	}
	return &Table{samples: make([]float32, size)}
}

// Fill samples donor at fs = len(table) Hz for one full period, the
// equivalent of the source library sampling an oscillator at a sample
// rate of size Hz. donor is called once per table entry.
func (t *Table) Fill(donor func() float32) {
	for i := range t.samples {
		t.samples[i] = donor()
	}
}

// FillFunc fills the table by sampling f at N evenly spaced phase
// positions in [0, 1), without requiring a stateful oscillator. This is
// the "function-sampled lookup table" generalization referenced in
// SPEC_FULL's supplemented Table[T] helper.
func (t *Table) FillFunc(f func(phase float64) float32) {
	n := len(t.samples)
	for i := 0; i < n; i++ {
		t.samples[i] = f(float64(i) / float64(n))
	}
}

// SetFrequency derives the phase increment for playback at freqHz: the
// table advances increment = freq * size / sampleRate table-indices per
// sample.
func (t *Table) SetFrequency(freqHz, sampleRate float64) {
	if sampleRate <= 0 {
		t.increment = 0
		return
	}
	t.increment = freqHz * float64(len(t.samples)) / sampleRate
}

// Process reads the table at the current fractional position with linear
// interpolation, wraps at the table boundary, and advances the position.
func (t *Table) Process() float32 {
	n := len(t.samples)
	if n == 0 {
		return 0
	}
	i0 := int(t.position)
	frac := float32(t.position - float64(i0))
	i0 %= n
	i1 := (i0 + 1) % n
	out := t.samples[i0] + (t.samples[i1]-t.samples[i0])*frac

	t.position += t.increment
	for t.position >= float64(n) {
		t.position -= float64(n)
	}
	for t.position < 0 {
		t.position += float64(n)
	}
	return out
}

// Reset returns the read position to zero without clearing the samples.
func (t *Table) Reset() { t.position = 0 }

// Len returns the number of samples the table holds.
func (t *Table) Len() int { return len(t.samples) }
