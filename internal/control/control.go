// Package control implements the declarative control and preset
// descriptors a host uses to build a parameter UI, plus a small
// function-sampled lookup Table helper. No UI rendering lives here; that
// is host/GUI territory and out of scope for the core.
package control

// Kind is the UI widget a Control represents.
type Kind int

const (
	KindNone Kind = iota
	KindRotary
	KindButton
	KindToggle
	KindSlider
	KindMenu
	KindMeter
	KindWheel
)

const (
	maxNameLen    = 32
	maxOptions    = 128
	maxControls   = 128
	maxPresets    = 128
	maxProgramLen = 128
)

// Size is the control's on-screen geometry. A zero Size is "auto",
// meaning the host picks a default layout.
type Size struct {
	X, Y, W, H int
}

// IsAuto reports whether the size was left at its zero value.
func (s Size) IsAuto() bool { return s == Size{} }

// Control is one UI-bound parameter descriptor.
type Control struct {
	Name    string
	Kind    Kind
	Min     float32
	Max     float32
	Initial float32
	Value   float32
	Size    Size
	Options []string
}

func clampName(name string) string {
	if len(name) > maxNameLen {
		return name[:maxNameLen]
	}
	return name
}

// Dial creates a Rotary control.
func Dial(name string, min, max, initial float32) Control {
	return Control{Name: clampName(name), Kind: KindRotary, Min: min, Max: max, Initial: initial, Value: initial}
}

// Button creates a momentary Button control.
func Button(name string) Control {
	return Control{Name: clampName(name), Kind: KindButton, Min: 0, Max: 1}
}

// Toggle creates a latching Toggle control.
func Toggle(name string, initial bool) Control {
	v := float32(0)
	if initial {
		v = 1
	}
	return Control{Name: clampName(name), Kind: KindToggle, Min: 0, Max: 1, Initial: v, Value: v}
}

// Slider creates a linear Slider control.
func Slider(name string, min, max, initial float32) Control {
	return Control{Name: clampName(name), Kind: KindSlider, Min: min, Max: max, Initial: initial, Value: initial}
}

// Menu creates a discrete-choice control over options, truncating beyond
// the 128-option bound. Initial selects an option index.
func Menu(name string, options []string, initial int) Control {
	if len(options) > maxOptions {
		options = options[:maxOptions]
	}
	return Control{
		Name:    clampName(name),
		Kind:    KindMenu,
		Min:     0,
		Max:     float32(len(options) - 1),
		Initial: float32(initial),
		Value:   float32(initial),
		Options: options,
	}
}

// Meter creates a read-only level display; the host writes Value, the
// control never accepts input.
func Meter(name string, min, max float32) Control {
	return Control{Name: clampName(name), Kind: KindMeter, Min: min, Max: max}
}

// Wheel creates a bipolar wheel control (e.g. pitch bend, mod wheel)
// centered at initial.
func Wheel(name string, min, max, initial float32) Control {
	return Control{Name: clampName(name), Kind: KindWheel, Min: min, Max: max, Initial: initial, Value: initial}
}

// Controls is a bounded collection modeling one plug-in's control
// surface (capacity 128, per the source library).
type Controls struct {
	items []Control
}

// Add appends a control, silently dropping it once the bounded capacity
// (128) is reached rather than growing unbounded.
func (c *Controls) Add(ctrl Control) {
	if len(c.items) >= maxControls {
		return
	}
	c.items = append(c.items, ctrl)
}

// Len returns the number of registered controls.
func (c *Controls) Len() int { return len(c.items) }

// At returns the control at index i.
func (c *Controls) At(i int) *Control { return &c.items[i] }

// Program is a named preset: a name plus up to 128 float values.
type Program struct {
	Name   string
	Values []float32
}

// NewProgram builds a Program, truncating values beyond the 128-value
// bound.
func NewProgram(name string, values ...float32) Program {
	if len(values) > maxProgramLen {
		values = values[:maxProgramLen]
	}
	return Program{Name: clampName(name), Values: values}
}

// Presets is a bounded collection of Programs (capacity 128).
type Presets struct {
	items []Program
}

// Add appends a program, silently dropping it once capacity (128) is
// reached.
func (p *Presets) Add(prog Program) {
	if len(p.items) >= maxPresets {
		return
	}
	p.items = append(p.items, prog)
}

// Len returns the number of registered presets.
func (p *Presets) Len() int { return len(p.items) }

// At returns the preset at index i.
func (p *Presets) At(i int) *Program { return &p.items[i] }

// Table is a fixed-size lookup table filled from an arbitrary function
// of normalized position in [0,1), distinct from the audio wavetable
// primitive: this one is generic over its element type and has no
// notion of playback rate, only a static Fill/At/Len surface.
type Table[T any] struct {
	values []T
}

// NewTable builds a Table of the given size, sampling fn at evenly
// spaced positions across [0,1).
func NewTable[T any](size int, fn func(pos float64) T) *Table[T] {
	values := make([]T, size)
	for i := range values {
		values[i] = fn(float64(i) / float64(size))
	}
	return &Table[T]{values: values}
}

// Len returns the table size.
func (t *Table[T]) Len() int { return len(t.values) }

// At returns the value at index i.
func (t *Table[T]) At(i int) T { return t.values[i] }
