package envelope

// Stage is the envelope's lifecycle stage. Sustain is the default; a note
// moves to Release on note-off and to Off once the release ramp settles.
type Stage int

const (
	Sustain Stage = iota
	Release
	Off
)

// Mode selects whether retargeting a segment computes a rate from a time
// duration (Time) or takes the rate value directly (Rate).
type Mode int

const (
	TimeMode Mode = iota
	RateMode
)

// Point is one breakpoint: x in seconds, y the target value.
type Point struct {
	X, Y float64
}

// Loop is an inclusive (start, end) pair of point indices that the
// envelope cycles between while in Sustain.
type Loop struct {
	Start, End int
}

// Envelope is the breakpoint state machine: an ordered list of points, an
// optional loop window, a stage, a time cursor, and a pluggable Ramp.
type Envelope struct {
	points     []Point
	loop       *Loop
	stage      Stage
	pointIdx   int
	time       float64
	timeInc    float64
	sampleRate float64
	mode       Mode
	ramp       Ramp
}

// New creates an Envelope from the given breakpoints at the given sample
// rate. Points must have non-decreasing X values.
func New(points []Point, sampleRate float64) *Envelope {
	e := &Envelope{sampleRate: sampleRate}
	e.ramp = &Linear{}
	e.Set(points)
	return e
}

// Set installs a new breakpoint list and reinitializes the envelope.
func (e *Envelope) Set(points []Point) {
	e.points = points
	if e.sampleRate > 0 {
		e.timeInc = 1 / e.sampleRate
	}
	e.Initialise()
}

// SetRamp installs a custom Ramp implementation (e.g. DxRamp) and
// reinitializes the envelope so the new ramp is primed from point zero.
func (e *Envelope) SetRamp(r Ramp) {
	e.ramp = r
	e.Initialise()
}

// SetLoop installs a (start, end) loop window; indices are clamped to the
// point list's bounds.
func (e *Envelope) SetLoop(start, end int) {
	if start < 0 {
		start = 0
	}
	if end >= len(e.points) {
		end = len(e.points) - 1
	}
	e.loop = &Loop{Start: start, End: end}
}

// ResetLoop removes the loop window so the envelope runs once through to
// the final point and stops.
func (e *Envelope) ResetLoop() { e.loop = nil }

// SetMode switches between time-based and rate-based segment retargeting.
func (e *Envelope) SetMode(m Mode) { e.mode = m }

// Initialise resets the point index, stage, and time cursor, and primes
// the ramp at the value of point zero.
func (e *Envelope) Initialise() {
	e.pointIdx = 0
	e.stage = Sustain
	e.time = 0
	if e.sampleRate > 0 {
		e.timeInc = 1 / e.sampleRate
	}
	if len(e.points) == 0 {
		return
	}
	e.ramp.SetValue(e.points[0].Y)
	if len(e.points) > 1 {
		e.retarget(e.points[0].X, e.points[1])
	}
}

// Value returns the ramp's current settled/in-flight value without
// advancing it, for callers that need to read the envelope level between
// Advance calls (e.g. to release from the current level).
func (e *Envelope) Value() float64 { return e.ramp.Value() }

// Stage returns the envelope's current lifecycle stage.
func (e *Envelope) Stage() Stage { return e.stage }

// SetStage forces the stage directly (used by voice stealing / reset).
func (e *Envelope) SetStage(s Stage) { e.stage = s }

// Finished reports whether the envelope has reached Off.
func (e *Envelope) Finished() bool { return e.stage == Off }

// Length returns the time, in seconds, of the final breakpoint.
func (e *Envelope) Length() float64 {
	if len(e.points) == 0 {
		return 0
	}
	return e.points[len(e.points)-1].X
}

// At evaluates the envelope's value at an arbitrary time via linear
// interpolation between the bracketing points, without advancing any
// internal state. It is the static lookup used for previewing a curve.
func (e *Envelope) At(t float64) float64 {
	if len(e.points) == 0 {
		return 0
	}
	if t <= e.points[0].X {
		return e.points[0].Y
	}
	last := e.points[len(e.points)-1]
	if t >= last.X {
		return last.Y
	}
	for i := 1; i < len(e.points); i++ {
		if t <= e.points[i].X {
			p0, p1 := e.points[i-1], e.points[i]
			if p1.X == p0.X {
				return p1.Y
			}
			frac := (t - p0.X) / (p1.X - p0.X)
			return p0.Y + (p1.Y-p0.Y)*frac
		}
	}
	return last.Y
}

// Release moves the envelope to Release, retargeting to level over t
// seconds. A zero t is the caller's signal to use the specialization's
// default release time (ADSR does this with its own R parameter).
func (e *Envelope) Release(t, level float64) {
	e.stage = Release
	e.retargetTime(t, Point{X: e.time + t, Y: level})
}

func (e *Envelope) retarget(fromTime float64, to Point) {
	switch e.mode {
	case RateMode:
		e.setTargetRate(to)
	default:
		e.retargetTime(to.X-fromTime, to)
	}
}

func (e *Envelope) retargetTime(duration float64, to Point) {
	if duration <= 0 {
		e.ramp.SetValue(to.Y)
		return
	}
	current := e.ramp.Value()
	rate := abs(to.Y-current) / (duration * e.sampleRate)
	e.ramp.SetTarget(to.Y, rate)
}

func (e *Envelope) setTargetRate(to Point) {
	if to.X == 0 {
		e.ramp.SetValue(to.Y)
		return
	}
	e.ramp.SetTarget(to.Y, to.X)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Advance is the per-sample step: it emits the ramp's current value, then
// applies the Sustain/Release/Off stage transition for the next call.
func (e *Envelope) Advance() float64 {
	out := e.ramp.Advance()
	if !e.ramp.Active() {
		switch e.stage {
		case Sustain:
			if e.loop != nil && e.pointIdx >= e.loop.End {
				e.pointIdx = e.loop.Start
				e.retarget(e.points[e.pointIdx].X, e.points[e.loopTargetIndex()])
			} else if e.pointIdx+1 < len(e.points) {
				from := e.points[e.pointIdx]
				e.pointIdx++
				e.retarget(from.X, e.points[e.pointIdx])
			} else {
				e.stage = Off
			}
		case Release:
			e.stage = Off
		case Off:
			// hold at the ramp's settled value
		}
	}
	e.time += e.timeInc
	return out
}

// loopTargetIndex returns the point index the loop jumps to retarget
// against: the point just after the loop start.
func (e *Envelope) loopTargetIndex() int {
	idx := e.pointIdx + 1
	if idx >= len(e.points) {
		idx = len(e.points) - 1
	}
	return idx
}
