//go:build !espeak

package tts

import (
	"context"
	"fmt"
)

type Espeak struct{}

func NewEspeak(string, int) (*Espeak, error) {
	return nil, fmt.Errorf("%w: rebuild with -tags espeak", ErrNotSupported)
}

func (*Espeak) Speak(context.Context, string) error { return ErrNotSupported }

func (*Espeak) Close() error { return nil }
