package voice

import "testing"

func TestPrefersOffSlot(t *testing.T) {
	pool := newFakePool(4)
	notes := New[*fakeVoice](pool)
	pool[2].stage = Sustain

	idx := notes.NoteOn(60, 1)
	if idx == 2 {
		t.Errorf("should not have stolen the sustaining slot 2, got %d", idx)
	}
	if pool[idx].stage != Sustain {
		t.Errorf("expected allocated slot to be Sustain after Start, got %v", pool[idx].stage)
	}
}

func TestVoiceStealingOldestFirst(t *testing.T) {
	pool := newFakePool(4)
	notes := New[*fakeVoice](pool)

	pitches := []float32{60, 62, 64, 65}
	idxs := make([]int, len(pitches))
	for i, p := range pitches {
		idxs[i] = notes.NoteOn(p, 1)
	}

	// all four voices sustaining, all slots used; NoteOn 67 must steal
	// the globally oldest slot, which held pitch 60.
	stolen := notes.NoteOn(67, 1)
	if stolen != idxs[0] {
		t.Errorf("expected steal to reuse the oldest slot (index %d), got %d", idxs[0], stolen)
	}
	if pool[stolen].note != 67 {
		t.Errorf("expected stolen slot to now hold pitch 67, got %v", pool[stolen].note)
	}
	for i := 1; i < len(idxs); i++ {
		if pool[idxs[i]].note != pitches[i] {
			t.Errorf("voice %d should still hold pitch %v, got %v", idxs[i], pitches[i], pool[idxs[i]].note)
		}
	}
}

func TestReleasedSlotPreferredOverSustaining(t *testing.T) {
	pool := newFakePool(2)
	notes := New[*fakeVoice](pool)

	a := notes.NoteOn(60, 1)
	b := notes.NoteOn(62, 1)
	notes.NoteOff(a, 0)

	stolen := notes.NoteOn(64, 1)
	if stolen != a {
		t.Errorf("expected to steal the released slot %d, got %d (other slot %d)", a, stolen, b)
	}
}
