// Package osc implements the fixed-point phase accumulator, the Basic
// (naive) and Fast (fixed-point) oscillator families, and the band-limited
// OSM generators.
package osc

import "math"

// freqC4 is F_C4, the reference frequency the fixed-point increment scale
// is derived from.
const freqC4 = 261.625

// fixedBase returns FBASE = F_C4 * 2^31 / sampleRate.
func fixedBase(sampleRate float64) float64 {
	return freqC4 * float64(int64(1)<<31) / sampleRate
}

// Increment is a signed 32-bit phase increment. Adding two increments wraps
// for free via plain integer overflow.
type Increment int32

// IncrementFor derives the fixed-point increment for a frequency at a given
// sample rate: increment = 2 * round(FBASE * f / F_C4).
func IncrementFor(freq, sampleRate float64) Increment {
	if sampleRate <= 0 {
		return 0
	}
	fbase := fixedBase(sampleRate)
	return Increment(int32(2 * math.Round(fbase*freq/freqC4)))
}

// Phase is an unsigned 32-bit fixed-point phase accumulator; the full
// uint32 range maps onto [0, 2*Pi).
type Phase uint32

// Add advances the phase by inc, wrapping for free.
func (p Phase) Add(inc Increment) Phase {
	return Phase(uint32(p) + uint32(int32(inc)))
}

// Angle converts the fixed-point phase to radians in [0, 2*Pi) using a
// bit-pattern trick: the high 23 bits of the accumulator become the
// mantissa of an IEEE-754 binary32 value in [1.0, 2.0), which is then
// shifted down by one and scaled by 2*Pi. This assumes little-endian
// IEEE 754 binary32 layout and is the hot path for every Fast oscillator.
func (p Phase) Angle() float32 {
	bits := uint32(0x3F800000) | (uint32(p) >> 9)
	f := math.Float32frombits(bits)
	return (f - 1.0) * 2 * math.Pi
}

// Unit returns the phase as a fraction of one full turn, in [0, 1).
func (p Phase) Unit() float32 {
	bits := uint32(0x3F800000) | (uint32(p) >> 9)
	f := math.Float32frombits(bits)
	return f - 1.0
}

// fastMod2Pi reduces an arbitrary float32 angle to [0, 2*Pi) by taking the
// fractional part of the angle in turns (via math.Floor), for callers that
// hold an angle rather than a Phase accumulator.
func fastMod2Pi(angle float32) float32 {
	const twoPi = 2 * math.Pi
	turns := angle / twoPi
	frac := turns - float32(math.Floor(float64(turns)))
	return frac * twoPi
}

// fastSin approximates sin(angle) for angle in [0, 2*Pi) using range
// reduction to a quarter turn and the odd-minimax polynomial
// ((a*x^2+b)*x^2+c)*x^2+1)*x, valid on [-Pi/2, Pi/2].
func fastSin(angle float32) float32 {
	angle = fastMod2Pi(angle)
	x := angle
	sign := float32(1)
	switch {
	case x > math.Pi:
		x -= 2 * math.Pi
	}
	if x > math.Pi/2 {
		x = math.Pi - x
	} else if x < -math.Pi/2 {
		x = -math.Pi - x
	}
	const (
		a = -0.0001950727
		b = 0.0083320845
		c = -0.1666665772
	)
	x2 := x * x
	return sign * (((a*x2+b)*x2+c)*x2 + 1) * x
}
