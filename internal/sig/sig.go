// Package sig defines the typed scalar values that flow through klangkit's
// signal algebra: a bare Signal, a Param distinguished by update intent, and
// the named sub-kinds (Pitch, Frequency, Phase, Amplitude, DB, Velocity)
// with explicit conversions between them.
package sig

import "math"

// Signal is a single audio sample. It is defined as float32 itself (not a
// wrapper struct) so that a []Signal is bit-identical to a []float32 and the
// two can alias freely, matching the layout invariant of the source library.
type Signal = float32

// Param is a control value that may be updated at audio rate. Unlike a bare
// Signal it carries no extra state of its own; AddWrapped implements the
// "phase increment" add that wraps at a configurable modulus.
type Param float32

// AddWrapped adds d to p and wraps the result into [0, modulus).
func (p Param) AddWrapped(d, modulus float32) Param {
	v := float32(p) + d
	if modulus <= 0 {
		return Param(v)
	}
	for v >= modulus {
		v -= modulus
	}
	for v < 0 {
		v += modulus
	}
	return Param(v)
}

// Pitch is a MIDI-style note value, nominally in [0, 127] but not clamped by
// this type (callers may pass fractional or out-of-range pitches for glide
// and pitch-bend purposes).
type Pitch float32

// Frequency is a value in Hz.
type Frequency float32

// Phase is a radian value that wraps to [0, 2*Pi).
type Phase float32

// Amplitude is a linear gain value; Velocity is the same representation.
type Amplitude float32

// Velocity is an Amplitude received from a note-on event.
type Velocity = Amplitude

// DB is a logarithmic gain value (decibels relative to unity amplitude).
type DB float32

const (
	a4Frequency = 440.0
	a4Pitch     = 69.0
)

// ToFrequency converts a MIDI pitch to Hz using the equal-tempered 440Hz A4
// reference: f = 440 * 2^((p-69)/12).
func (p Pitch) ToFrequency() Frequency {
	return Frequency(a4Frequency * math.Pow(2, (float64(p)-a4Pitch)/12))
}

// ToPitch converts a frequency in Hz back to a MIDI pitch. It is the exact
// inverse of ToFrequency for positive frequencies.
func (f Frequency) ToPitch() Pitch {
	if f <= 0 {
		return 0
	}
	return Pitch(a4Pitch + 12*math.Log2(float64(f)/a4Frequency))
}

// ToDB converts a linear amplitude to decibels via 20*log10(a). Amplitudes
// at or below zero map to a large negative value rather than -Inf, so that
// round-tripping through ToAmplitude never produces NaN.
func (a Amplitude) ToDB() DB {
	if a <= 0 {
		return DB(-240)
	}
	return DB(20 * math.Log10(float64(a)))
}

// ToAmplitude converts decibels back to a linear amplitude: 10^(db*0.05).
func (d DB) ToAmplitude() Amplitude {
	return Amplitude(math.Pow(10, float64(d)*0.05))
}

// WrapPhase returns the radian phase wrapped to [0, 2*Pi).
func WrapPhase(radians float32) Phase {
	const twoPi = 2 * math.Pi
	v := radians
	for v >= twoPi {
		v -= twoPi
	}
	for v < 0 {
		v += twoPi
	}
	return Phase(v)
}

// Signals2 is a stereo pair of signals. Arithmetic is lane-wise, the
// specialization of the source library's signals<CHANNELS> template to
// CHANNELS=2.
type Signals2 struct {
	L, R Signal
}

func (s Signals2) Add(o Signals2) Signals2 { return Signals2{s.L + o.L, s.R + o.R} }
func (s Signals2) Sub(o Signals2) Signals2 { return Signals2{s.L - o.L, s.R - o.R} }
func (s Signals2) Mul(o Signals2) Signals2 { return Signals2{s.L * o.L, s.R * o.R} }
func (s Signals2) Scale(g float32) Signals2 {
	return Signals2{s.L * g, s.R * g}
}

// Mono returns a Signals2 with both channels holding the same value.
func Mono(v Signal) Signals2 { return Signals2{L: v, R: v} }
