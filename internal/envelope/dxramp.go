package envelope

// dxPatternMask selects, by qrate mod 4, which sample indices a DxRamp is
// allowed to step on: mask 0 steps every sample, mask 1 every other
// sample, mask 3 every fourth, mask 7 every eighth.
var dxPatternMask = [4]uint64{0, 1, 3, 7}

// dxStepTable holds the per-qrate step magnitude. The DX-style rate table
// is a proprietary numeric curve whose provenance is unresolved (see
// spec's open question); this is a documented placeholder geometric
// progression, not a reproduction of the original hardware's table.
var dxStepTable = buildDxStepTable()

func buildDxStepTable() [64]float64 {
	var t [64]float64
	base := 1.0 / 4096
	for i := range t {
		t[i] = base * float64(uint64(1)<<uint(i/4))
	}
	return t
}

// DxRamp is the DX-style rate-quantized Ramp: its rate is derived from a
// quantized value qrate in [0,63] rather than a continuous per-sample
// rate. shift = qrate/4 - 11 both selects the step table entry and, when
// negative, gates stepping to every 2^(-shift) qualifying samples on top
// of the qrate-mod-4 bit-mask pattern.
type DxRamp struct {
	value, target float64
	qrate         int
	shift         int
	step          float64
	sampleIndex   uint64
	triggerCount  uint64
	active        bool
}

// SetTarget retargets the ramp. rate is interpreted as a qrate value in
// [0,63] (truncated and clamped), not a continuous per-sample rate.
func (r *DxRamp) SetTarget(value, rate float64) {
	r.target = value
	r.qrate = clampQrate(int(rate))
	r.shift = r.qrate/4 - 11
	r.sampleIndex = 0
	r.triggerCount = 0
	r.step = dxStepTable[r.qrate]
	if value < r.value {
		r.step = -r.step
	}
	r.active = r.value != value
}

func (r *DxRamp) SetValue(value float64) {
	r.value = value
	r.active = false
}

func (r *DxRamp) Value() float64 { return r.value }
func (r *DxRamp) Active() bool   { return r.active }

func (r *DxRamp) Advance() float64 {
	out := r.value
	if !r.active {
		return out
	}
	r.sampleIndex++
	mask := dxPatternMask[r.qrate%4]
	if r.sampleIndex&mask != 0 {
		return out
	}
	extra := uint64(1)
	if r.shift < 0 {
		extra = uint64(1) << uint(-r.shift)
	}
	r.triggerCount++
	if r.triggerCount%extra != 0 {
		return out
	}
	r.value += r.step
	if (r.step > 0 && r.value >= r.target) || (r.step < 0 && r.value <= r.target) {
		r.value = r.target
		r.active = false
	}
	return out
}

func clampQrate(q int) int {
	if q < 0 {
		return 0
	}
	if q > 63 {
		return 63
	}
	return q
}
