// Package klangkit is a real-time audio synthesis and effects framework:
// a signal algebra, fast band-limited oscillators, filters, delay,
// envelopes, a wavetable primitive, polyphonic voice allocation, and the
// Synth/Effect orchestration that ties them together for a host running
// on its own audio thread.
//
// Most parameter domain violations are clamped rather than returned as
// errors (the biquad's Q floor, envelope loop indices, the DX ramp's
// qrate). The delay line's Tap is the exception: it returns an error for
// a delay beyond the line's capacity. Draining the event queue at the
// start of each block copies the queued events into a new slice, and
// queue access takes a short mutex.
package klangkit

import "github.com/gosynth/klangkit/internal/sig"

// Re-exported scalar types: callers build signal graphs against these
// names rather than reaching into internal/sig directly.
type (
	Signal    = sig.Signal
	Param     = sig.Param
	Pitch     = sig.Pitch
	Frequency = sig.Frequency
	Phase     = sig.Phase
	Amplitude = sig.Amplitude
	Velocity  = sig.Velocity
	DB        = sig.DB
	Signals2  = sig.Signals2
)

// Mono lifts a single signal to a stereo pair with both channels equal.
func Mono(v Signal) Signals2 { return sig.Mono(v) }
