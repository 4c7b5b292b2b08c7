//go:build !whisper

package stt

import (
	"context"
	"fmt"
)

// Whisper is a stub when built without whisper.cpp.
type Whisper struct{}

func NewWhisper(Options) (*Whisper, error) {
	return nil, fmt.Errorf("%w: rebuild with -tags whisper", ErrNotSupported)
}

func (*Whisper) Close() error { return nil }

func (*Whisper) Transcribe(context.Context, []float32) (string, error) {
	return "", ErrNotSupported
}
