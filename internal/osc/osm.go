package osc

// State names one of the six realized transitions the OSM state machine
// can take in a single sample step, composed from whether the waveform was
// above or below the duty threshold before and after stepping, and whether
// the step carried across the cycle boundary (phase wrap).
type State int

const (
	Up State = iota
	Down
	UpDown
	DownUp
	UpDownUp
	DownUpDown
)

// OSM (Oscillator State Machine) generates a band-limited saw or pulse by
// evaluating the naive waveform and subtracting a closed-form correction at
// each discontinuity the current sample step crosses: the cycle-boundary
// edge (phase wraps from 1 back to 0) and, for pulse waveforms, the duty
// edge (phase crosses the duty threshold col). At most one sample step can
// cross both edges at once, which is the UpDown/DownUp/UpDownUp/
// DownUpDown family of realized transitions; Up and Down are the common
// case of crossing a single edge. The two corrections are independent
// closed-form quadratics, so applying both in the same step when both
// edges are crossed reproduces the two-edge transitions without an
// explicit 6-way dispatch.
type OSM struct {
	increment float64 // phase delta per sample, in cycles
	phase     float64 // current phase in [0, 1)
	duty      float64 // col: duty-cycle threshold in (0, 1); 0 disables the duty edge
	waveform  func(phase, duty float64) float64

	// cached coefficients, recomputed whenever increment or duty changes
	c1, c2, rcpf, omf float64
}

func newOSM(waveform func(float64, float64) float64, duty float64) *OSM {
	return &OSM{waveform: waveform, duty: duty}
}

// Saw produces a band-limited rising sawtooth.
func Saw() *OSM { return newOSM(sawShape, 0) }

// Triangle produces a band-limited triangle by running the saw shape with
// a symmetric (col=0.5) duty split, which halves and mirrors the ramp.
func Triangle() *OSM { return newOSM(sawShape, 0.5) }

// Square produces a band-limited 50%-duty pulse.
func Square() *OSM { return newOSM(pulseShape, 0.5) }

// PulseWave produces a band-limited pulse at the given duty cycle.
func PulseWave(duty float64) *OSM { return newOSM(pulseShape, duty) }

func sawShape(phase, duty float64) float64 {
	if duty > 0 && duty < 1 {
		// Triangle: fold the ramp at the duty point instead of wrapping.
		if phase < duty {
			return 2*(phase/duty) - 1
		}
		return 1 - 2*(phase-duty)/(1-duty)
	}
	return 2*phase - 1
}

func pulseShape(phase, duty float64) float64 {
	if phase < duty {
		return 1
	}
	return -1
}

// SetFrequency sets the oscillator's fundamental and recomputes the cached
// edge-correction coefficients.
func (o *OSM) SetFrequency(freqHz, sampleRate float64) {
	if sampleRate <= 0 {
		o.increment = 0
		return
	}
	o.increment = freqHz / sampleRate
	o.recompute()
}

// SetDuty sets the duty-cycle threshold (col) for pulse waveforms.
func (o *OSM) SetDuty(duty float64) {
	if duty <= 0 {
		duty = 0.0001
	}
	if duty >= 1 {
		duty = 0.9999
	}
	o.duty = duty
	o.recompute()
}

func (o *OSM) recompute() {
	col := o.duty
	if col <= 0 || col >= 1 {
		col = 0.5
	}
	o.c1 = 1 / col
	o.c2 = -1 / (1 - col)
	if o.increment > 0 {
		o.rcpf = 1 / o.increment
	}
	o.omf = 1 - o.increment
}

// blepAt returns the closed-form quadratic correction for a discontinuity
// located at edge (in [0,1)), evaluated against the current phase and this
// sample's increment. It returns 0 when the current step does not cross
// the edge.
func (o *OSM) blepAt(edge float64) float64 {
	dt := o.increment
	if dt <= 0 {
		return 0
	}
	t := o.phase - edge
	if t < 0 {
		t += 1
	}
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

// Process returns the next band-limited sample and advances the phase.
func (o *OSM) Process() float32 {
	value := o.waveform(o.phase, o.duty)
	value -= o.blepAt(0)
	if o.duty > 0 {
		value -= o.blepAt(o.duty)
	}
	o.phase += o.increment
	if o.phase >= 1 {
		o.phase -= 1
	}
	if o.phase < 0 {
		o.phase += 1
	}
	return float32(value)
}
