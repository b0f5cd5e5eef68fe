package osc

// FastSine is the fixed-point-phase sine oscillator: it drives a Phase
// accumulator with an Increment derived from IncrementFor and evaluates
// fastSin on the reduced angle instead of calling math.Sin.
type FastSine struct {
	phase Phase
	inc   Increment
}

func (o *FastSine) SetFrequency(freqHz, sampleRate float64) {
	o.inc = IncrementFor(freqHz, sampleRate)
}

func (o *FastSine) Process() float32 {
	out := fastSin(o.phase.Angle())
	o.phase = o.phase.Add(o.inc)
	return out
}

// FastNoise is a fixed-point LFSR-driven noise source, matching the class
// of fast generators that avoid floating-point trig or rand() entirely.
type FastNoise struct {
	lfsr uint32
}

func (o *FastNoise) SetFrequency(float64, float64) {}

func (o *FastNoise) Process() float32 {
	if o.lfsr == 0 {
		o.lfsr = 0x7FFF
	}
	bit := (o.lfsr ^ (o.lfsr >> 1)) & 1
	o.lfsr = (o.lfsr >> 1) | (bit << 14)
	return float32(o.lfsr&0x3FFF)/float32(0x3FFF)*2 - 1
}
