package osc

import (
	"math"
	"math/rand"
)

// cycle is a naive (unit-phase, non-band-limited) phase accumulator shared
// by the Basic oscillator family. Phase runs in [0, 1) cycles rather than
// radians so each waveform's shape function stays a one-liner.
type cycle struct {
	phase float64
	inc   float64
}

func (c *cycle) setFrequency(freqHz, sampleRate float64) {
	if sampleRate <= 0 {
		c.inc = 0
		return
	}
	c.inc = freqHz / sampleRate
}

func (c *cycle) next() float64 {
	p := c.phase
	c.phase += c.inc
	for c.phase >= 1 {
		c.phase -= 1
	}
	for c.phase < 0 {
		c.phase += 1
	}
	return p
}

// Sine is the naive (non-band-limited) sine oscillator.
type Sine struct{ cycle }

func (o *Sine) SetFrequency(freqHz, sampleRate float64) { o.setFrequency(freqHz, sampleRate) }
func (o *Sine) Process() float32                        { return float32(math.Sin(2 * math.Pi * o.next())) }

// Saw is the naive rising sawtooth, [-1, 1).
type Saw struct{ cycle }

func (o *Saw) SetFrequency(freqHz, sampleRate float64) { o.setFrequency(freqHz, sampleRate) }
func (o *Saw) Process() float32                        { return float32(2*o.next() - 1) }

// Triangle is the naive symmetric triangle wave.
type Triangle struct{ cycle }

func (o *Triangle) SetFrequency(freqHz, sampleRate float64) { o.setFrequency(freqHz, sampleRate) }
func (o *Triangle) Process() float32 {
	p := o.next()
	if p < 0.5 {
		return float32(4*p - 1)
	}
	return float32(3 - 4*p)
}

// Square is the naive 50%-duty square wave.
type Square struct{ cycle }

func (o *Square) SetFrequency(freqHz, sampleRate float64) { o.setFrequency(freqHz, sampleRate) }
func (o *Square) Process() float32 {
	if o.next() < 0.5 {
		return 1
	}
	return -1
}

// Pulse is the naive pulse wave with adjustable duty cycle in (0, 1).
type Pulse struct {
	cycle
	Duty float32
}

func (o *Pulse) SetFrequency(freqHz, sampleRate float64) { o.setFrequency(freqHz, sampleRate) }
func (o *Pulse) Process() float32 {
	duty := o.Duty
	if duty <= 0 || duty >= 1 {
		duty = 0.5
	}
	if float32(o.next()) < duty {
		return 1
	}
	return -1
}

// Noise is a white-noise generator. Frequency is accepted for interface
// symmetry with the other Basic oscillators but ignored.
type Noise struct {
	rng *rand.Rand
}

func (o *Noise) SetFrequency(float64, float64) {}

func (o *Noise) Process() float32 {
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(1))
	}
	return float32(o.rng.Float64()*2 - 1)
}
