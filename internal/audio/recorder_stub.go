//go:build !portaudio

package audio

import (
	"context"
	"fmt"
	"time"
)

// Recorder stub when portaudio is not available.
type Recorder struct{}

func NewRecorder(float64) *Recorder { return &Recorder{} }

func (r *Recorder) Init() error {
	return fmt.Errorf("%w: rebuild with -tags portaudio", ErrNotSupported)
}

func (r *Recorder) Close() {}

func (r *Recorder) Record(context.Context, time.Duration, time.Duration) ([]float32, error) {
	return nil, ErrNotSupported
}
