package klangkit

// Process is one effect's per-sample transform: read in, return out.
type Process func(in Signals2) Signals2

// Effect wraps a per-sample Process function and applies it across a
// whole buffer, the Go equivalent of the source library's
// Effect::process(buffer) driving a user-defined per-sample process().
type Effect struct {
	fn Process
}

// NewEffect wraps fn as an Effect.
func NewEffect(fn Process) *Effect { return &Effect{fn: fn} }

// ProcessBuffer runs the effect's per-sample function over every frame
// in buf in place.
func (e *Effect) ProcessBuffer(buf []Signals2) {
	if e.fn == nil {
		return
	}
	for i := range buf {
		buf[i] = e.fn(buf[i])
	}
}

// ProcessInterleaved runs the effect over an interleaved stereo buffer
// (L, R, L, R, ...), the layout the kept audio-output bridge expects.
func (e *Effect) ProcessInterleaved(buf []float32) {
	if e.fn == nil {
		return
	}
	for i := 0; i+1 < len(buf); i += 2 {
		out := e.fn(Signals2{L: buf[i], R: buf[i+1]})
		buf[i], buf[i+1] = out.L, out.R
	}
}

// Chain runs a sequence of Effects in order, the multi-stage chain form
// of `in >> fx1 >> fx2 >> out`.
type Chain struct {
	stages []*Effect
}

// NewChain builds a Chain over the given stages, applied in order.
func NewChain(stages ...*Effect) *Chain { return &Chain{stages: stages} }

// ProcessInterleaved runs every stage over buf in place, in order.
func (c *Chain) ProcessInterleaved(buf []float32) {
	for _, stage := range c.stages {
		stage.ProcessInterleaved(buf)
	}
}
