package voice

type fakeVoice struct {
	stage Stage
	note  float32
}

func (f *fakeVoice) Stage() Stage { return f.stage }
func (f *fakeVoice) Start(pitch, velocity float32) {
	f.note = pitch
	f.stage = Sustain
}
func (f *fakeVoice) Release(float32) { f.stage = Release }
func (f *fakeVoice) Stop()           { f.stage = Off }

func newFakePool(n int) []*fakeVoice {
	pool := make([]*fakeVoice, n)
	for i := range pool {
		pool[i] = &fakeVoice{stage: Off}
	}
	return pool
}
