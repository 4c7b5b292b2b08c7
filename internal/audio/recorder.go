//go:build portaudio

package audio

import (
	"context"
	"time"

	"github.com/gordonklaus/portaudio"
)

// Recorder captures single utterances from the default input device.
type Recorder struct {
	threshold float64
}

func NewRecorder(threshold float64) *Recorder { return &Recorder{threshold: threshold} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record blocks until one utterance has been captured. It fails with
// ErrTimeout when no speech starts within timeout.
func (r *Recorder) Record(ctx context.Context, timeout, phraseLimit time.Duration) ([]float32, error) {
	buf := make([]float32, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	gate := newSpeechGate(r.threshold, timeout, phraseLimit)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := stream.Read(); err != nil {
			return nil, err
		}
		done, err := gate.feed(buf)
		if err != nil {
			return nil, err
		}
		if done {
			return gate.result()
		}
	}
}
