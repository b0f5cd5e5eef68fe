package klangkit

import (
	"github.com/gosynth/klangkit/internal/osc"
	"github.com/gosynth/klangkit/internal/wavetable"
)

// OscillatorKind selects which concrete waveform an Osc wraps. This is
// the sum-type replacement for the source library's virtual-dispatch
// Oscillator hierarchy (Generator/Modifier/Oscillator base classes):
// instead of a base class pointer, Osc holds exactly one live variant
// and dispatches on Kind.
type OscillatorKind int

const (
	KindSine OscillatorKind = iota
	KindSaw
	KindTriangle
	KindSquare
	KindPulse
	KindNoise
	KindOsm
	KindWavetable
)

// Osc is a concrete oscillator: exactly one of its generator fields is
// in use, selected by Kind (and, for KindSine, by the fast flag). It
// satisfies both Generator and Oscillator.
type Osc struct {
	Kind OscillatorKind

	sine     osc.Sine
	saw      osc.Saw
	triangle osc.Triangle
	square   osc.Square
	pulse    osc.Pulse
	noise    osc.Noise
	fast     bool
	fastSine osc.FastSine
	osm      *osc.OSM
	table    *wavetable.Table
}

// NewSine creates a naive (trig-call) sine oscillator.
func NewSine() *Osc { return &Osc{Kind: KindSine} }

// NewFastSine creates the fixed-point-phase sine oscillator used on the
// hot synthesis path in place of a math.Sin call.
func NewFastSine() *Osc { return &Osc{Kind: KindSine, fast: true} }

// NewSaw creates a naive (aliased) sawtooth oscillator.
func NewSaw() *Osc { return &Osc{Kind: KindSaw} }

// NewTriangle creates a naive triangle oscillator.
func NewTriangle() *Osc { return &Osc{Kind: KindTriangle} }

// NewSquare creates a naive 50%-duty square oscillator.
func NewSquare() *Osc { return &Osc{Kind: KindSquare} }

// NewPulse creates a naive pulse oscillator with the given duty cycle.
func NewPulse(duty float32) *Osc {
	return &Osc{Kind: KindPulse, pulse: osc.Pulse{Duty: duty}}
}

// NewNoise creates a naive white-noise generator.
func NewNoise() *Osc { return &Osc{Kind: KindNoise} }

// NewOsmSaw creates a band-limited (PolyBLEP-corrected) sawtooth.
func NewOsmSaw() *Osc { return &Osc{Kind: KindOsm, osm: osc.Saw()} }

// NewOsmTriangle creates a band-limited triangle.
func NewOsmTriangle() *Osc { return &Osc{Kind: KindOsm, osm: osc.Triangle()} }

// NewOsmSquare creates a band-limited 50%-duty pulse.
func NewOsmSquare() *Osc { return &Osc{Kind: KindOsm, osm: osc.Square()} }

// NewOsmPulse creates a band-limited pulse at the given duty cycle.
func NewOsmPulse(duty float64) *Osc { return &Osc{Kind: KindOsm, osm: osc.PulseWave(duty)} }

// NewWavetableOsc wraps an already-filled wavetable.Table as an
// Oscillator, the Go form of the source library's
// `wavetable = someOscillator` assignment-fills-the-table idiom: the
// caller fills the Table (see wavetable.Table.Fill/FillFunc) before
// wrapping it here.
func NewWavetableOsc(t *wavetable.Table) *Osc { return &Osc{Kind: KindWavetable, table: t} }

// SetFrequency sets the oscillator's fundamental. sampleRate must match
// the rate Output is later called at.
func (o *Osc) SetFrequency(freqHz, sampleRate float64) {
	switch o.Kind {
	case KindSine:
		if o.fast {
			o.fastSine.SetFrequency(freqHz, sampleRate)
		} else {
			o.sine.SetFrequency(freqHz, sampleRate)
		}
	case KindSaw:
		o.saw.SetFrequency(freqHz, sampleRate)
	case KindTriangle:
		o.triangle.SetFrequency(freqHz, sampleRate)
	case KindSquare:
		o.square.SetFrequency(freqHz, sampleRate)
	case KindPulse:
		o.pulse.SetFrequency(freqHz, sampleRate)
	case KindNoise:
		o.noise.SetFrequency(freqHz, sampleRate)
	case KindOsm:
		o.osm.SetFrequency(freqHz, sampleRate)
	case KindWavetable:
		o.table.SetFrequency(freqHz, sampleRate)
	}
}

// SetDuty sets the duty cycle for Pulse and Osm-pulse variants; it is a
// no-op for any other Kind.
func (o *Osc) SetDuty(duty float64) {
	switch o.Kind {
	case KindPulse:
		o.pulse.Duty = float32(duty)
	case KindOsm:
		o.osm.SetDuty(duty)
	}
}

// Output produces the oscillator's next sample, satisfying Generator.
func (o *Osc) Output() Signal {
	switch o.Kind {
	case KindSine:
		if o.fast {
			return o.fastSine.Process()
		}
		return o.sine.Process()
	case KindSaw:
		return o.saw.Process()
	case KindTriangle:
		return o.triangle.Process()
	case KindSquare:
		return o.square.Process()
	case KindPulse:
		return o.pulse.Process()
	case KindNoise:
		return o.noise.Process()
	case KindOsm:
		return o.osm.Process()
	case KindWavetable:
		return o.table.Process()
	}
	return 0
}
