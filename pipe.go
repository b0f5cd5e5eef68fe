package klangkit

// Generator is a source object that produces its next sample on demand.
// This is the Go-idiomatic stand-in for the source library's
// operator-overloaded pipe (x >> y): instead of an overloaded `>>`, a
// caller chains Generators and Modifiers with explicit method calls.
type Generator interface {
	Output() Signal
}

// Modifier is a source/sink pair: it holds one input and one output
// signal. Feeding a Generator's output into a Modifier's input and
// reading the Modifier's own output is the explicit equivalent of the
// source library's `noise >> filter >> delay >> out` pipe chain.
type Modifier interface {
	Generator
	SetInput(Signal)
}

// Oscillator extends Generator with the property every waveform source in
// this package shares: a settable frequency.
type Oscillator interface {
	Generator
	SetFrequency(freqHz, sampleRate float64)
}

// Pipe feeds src's next output sample through each modifier in order
// and returns the final output. It is the explicit method-chain
// replacement for the pipe operator: Pipe(noise, filter, delay) is
// `noise >> filter >> delay` in the source library.
func Pipe(src Generator, chain ...Modifier) Signal {
	v := src.Output()
	for _, m := range chain {
		m.SetInput(v)
		v = m.Output()
	}
	return v
}

// Apply feeds v through a single unary float-to-float function, the
// explicit replacement for the `x >> f` form of the pipe operator.
func Apply(v Signal, f func(Signal) Signal) Signal {
	return f(v)
}
