package stt

import (
	"context"
	"errors"
)

var (
	ErrNotSupported = errors.New("transcription backend not compiled in")
	ErrNoAudio      = errors.New("no audio samples provided")
)

// Transcriber turns mono 16 kHz PCM into text.
type Transcriber interface {
	Transcribe(ctx context.Context, pcm []float32) (string, error)
}

type Options struct {
	Model         string // remote model name or local ggml model path
	Language      string // "auto", "en", ...
	InitialPrompt string // biases recognition towards the command vocabulary
	Threads       int    // local only; <=0 uses NumCPU
	BeamSize      int    // local only; 0 keeps greedy decoding
}
