package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gosynth/klangkit"
	intaudio "github.com/gosynth/klangkit/internal/audio"
)

// synthSource adapts a *klangkit.Synth to internal/audio's SampleSource:
// it renders stereo frames into a scratch buffer and interleaves them
// into the destination slice, the same planar-to-interleaved shape
// player.go's backend wrapper uses.
type synthSource struct {
	synth *klangkit.Synth
	frame []klangkit.Signals2
}

func newSynthSource(s *klangkit.Synth) *synthSource { return &synthSource{synth: s} }

func (s *synthSource) Process(dst []float32) {
	frames := len(dst) / 2
	if cap(s.frame) < frames {
		s.frame = make([]klangkit.Signals2, frames)
	}
	s.frame = s.frame[:frames]
	s.synth.RenderBlock(s.frame)
	for i, f := range s.frame {
		dst[i*2] = f.L
		dst[i*2+1] = f.R
	}
}

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		patchName  = flag.String("patch", "stab", "demo patch: stab|delay1|subtractive1|subtractive2|subtractive3|physical")
		polyphony  = flag.Int("polyphony", 8, "voice pool size")
		duration   = flag.Duration("duration", 4*time.Second, "how long to play before exiting")
		volume     = flag.Float64("volume", 0.8, "master volume scalar")
	)
	flag.Parse()

	voices, err := buildVoicePool(*patchName, *polyphony, float64(*sampleRate))
	if err != nil {
		log.Fatal(err)
	}

	synth := klangkit.NewSynth(float64(*sampleRate), voices, nil)
	synth.SetMasterGain(*volume)

	// C major arpeggio, one note every 350ms. No note-off is sent: each
	// note sounds until its voice ends on its own or the program exits.
	// The timers fire on their own goroutines, so notes go through the
	// event queue rather than Synth.NoteOn.
	chord := []klangkit.Pitch{60, 64, 67, 72}
	for i, p := range chord {
		delayUntil := time.Duration(i) * 350 * time.Millisecond
		time.AfterFunc(delayUntil, func(pitch klangkit.Pitch) func() {
			return func() { synth.PushEvent(klangkit.Event{Kind: klangkit.EventNoteOn, Pitch: pitch, Velocity: 0.8}) }
		}(p))
	}

	player, err := intaudio.NewPlayer(*sampleRate, newSynthSource(synth))
	if err != nil {
		log.Fatal(err)
	}
	player.Play()
	fmt.Printf("playing %q patch for %s...\n", *patchName, *duration)
	time.Sleep(*duration)
	if err := player.Stop(); err != nil {
		log.Fatal(err)
	}
}

// buildVoicePool constructs n identical voices of the named patch,
// ready to be handed to klangkit.NewSynth as its fixed polyphony pool.
func buildVoicePool(name string, n int, sampleRate float64) ([]klangkit.Voice, error) {
	if n < 1 {
		n = 1
	}
	factory, err := patchFactory(name)
	if err != nil {
		return nil, err
	}
	voices := make([]klangkit.Voice, n)
	for i := range voices {
		voices[i] = factory(sampleRate)
	}
	return voices, nil
}

func patchFactory(name string) (func(sampleRate float64) klangkit.Voice, error) {
	switch name {
	case "stab":
		return func(fs float64) klangkit.Voice { return newStab(fs) }, nil
	case "delay1":
		return func(fs float64) klangkit.Voice { return newDelay1(fs) }, nil
	case "subtractive1":
		return func(fs float64) klangkit.Voice { return newSubtractive1(fs) }, nil
	case "subtractive2":
		return func(fs float64) klangkit.Voice { return newSubtractive2(fs) }, nil
	case "subtractive3":
		return func(fs float64) klangkit.Voice { return newSubtractive3(fs) }, nil
	case "physical":
		return func(fs float64) klangkit.Voice { return newPhysical(fs) }, nil
	default:
		return nil, fmt.Errorf("klangdemo: unknown patch %q (expected stab|delay1|subtractive1|subtractive2|subtractive3|physical)", name)
	}
}
