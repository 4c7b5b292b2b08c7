package audio

import (
	"errors"
	"math"
	"time"
)

const (
	SampleRate = 16000
	frameSize  = 320 // 20ms at 16 kHz

	defaultThreshold = 0.015
	trailingSilence  = 600 * time.Millisecond
)

var (
	ErrTimeout      = errors.New("listening timed out")
	ErrNoSpeech     = errors.New("no speech captured")
	ErrNotSupported = errors.New("audio capture not compiled in")
)

// speechGate decides, frame by frame, when an utterance starts and ends.
// Speech must start within wait; the phrase ends after trailing silence or
// when it reaches limit.
type speechGate struct {
	threshold   float64
	waitFrames  int
	limitFrames int
	quietFrames int

	speaking bool
	waited   int
	phrase   int
	silent   int
	out      []float32
}

func newSpeechGate(threshold float64, wait, limit time.Duration) *speechGate {
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	return &speechGate{
		threshold:   threshold,
		waitFrames:  framesIn(wait),
		limitFrames: framesIn(limit),
		quietFrames: framesIn(trailingSilence),
		out:         make([]float32, 0, SampleRate*3),
	}
}

func framesIn(d time.Duration) int {
	n := int(d / (time.Second / (SampleRate / frameSize)))
	if n < 1 {
		n = 1
	}
	return n
}

// feed consumes one frame and reports whether the utterance is complete.
func (g *speechGate) feed(frame []float32) (bool, error) {
	loud := frameRMS(frame) > g.threshold

	if !g.speaking {
		if !loud {
			g.waited++
			if g.waited >= g.waitFrames {
				return true, ErrTimeout
			}
			return false, nil
		}
		g.speaking = true
	}

	g.out = append(g.out, frame...)
	g.phrase++

	if loud {
		g.silent = 0
	} else {
		g.silent++
		if g.silent >= g.quietFrames {
			return true, nil
		}
	}
	return g.phrase >= g.limitFrames, nil
}

func (g *speechGate) result() ([]float32, error) {
	if len(g.out) == 0 {
		return nil, ErrNoSpeech
	}
	return g.out, nil
}

func frameRMS(f []float32) float64 {
	if len(f) == 0 {
		return 0
	}
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
