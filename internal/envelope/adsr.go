package envelope

// epsilonTime nudges attack/decay breakpoints so that two points never
// land on the exact same x value, which would make retargeting divide by
// zero duration.
const epsilonTime = 0.00001

// ADSR is the envelope specialization built from attack, decay, sustain,
// and release parameters: three breakpoints {(0,0), (A,1), (A+D,S)} with
// a loop(2,2) so the sustain segment holds at a fixed level until
// Release is called.
type ADSR struct {
	*Envelope
	release float64
}

// NewADSR builds an ADSR at the given sample rate. attack and decay are in
// seconds, sustain is a level in [0,1], release is the default release
// time in seconds (used when Release is called with t=0).
func NewADSR(attack, decay, sustain, release, sampleRate float64) *ADSR {
	a := &ADSR{release: release}
	points := []Point{
		{X: 0, Y: 0},
		{X: attack + epsilonTime, Y: 1},
		{X: attack + decay + epsilonTime, Y: sustain},
	}
	a.Envelope = New(points, sampleRate)
	a.SetLoop(2, 2)
	return a
}

// Set reconfigures the ADSR's attack/decay/sustain/release parameters and
// reinitializes it from point zero.
func (a *ADSR) Set(attack, decay, sustain, release float64) {
	a.release = release
	a.Envelope.Set([]Point{
		{X: 0, Y: 0},
		{X: attack + epsilonTime, Y: 1},
		{X: attack + decay + epsilonTime, Y: sustain},
	})
	a.SetLoop(2, 2)
}

// Release moves the ADSR into its release segment. A zero t uses the
// ADSR's own release-time parameter; a zero level is the common case of
// releasing to silence.
func (a *ADSR) Release(t, level float64) {
	if t == 0 {
		t = a.release
	}
	a.Envelope.Release(t, level)
}
