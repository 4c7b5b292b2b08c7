//go:build !portaudio

package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hero/internal/audio"
	"hero/internal/config"
	"hero/internal/ipc"
	"hero/internal/listen"
	"hero/internal/logging"
	"hero/internal/session"
)

func TestNewCapturer_NoMicrophoneSupport(t *testing.T) {
	c, closeFn := newCapturer(config.Defaults())
	require.NotNil(t, c)
	defer closeFn()

	_, err := c.Record(context.Background(), time.Second, time.Second)
	assert.ErrorIs(t, err, audio.ErrNotSupported)
}

func TestSessionWithoutMicrophone(t *testing.T) {
	c, closeFn := newCapturer(config.Defaults())
	defer closeFn()

	l := listen.New(c, nil, nil, listen.Config{WakeWord: "hero"}, logging.NewNop())
	_, ok := l.Listen(context.Background())
	assert.False(t, ok)

	st := session.NewState()
	rec := &recorder{state: st}
	loop := session.NewLoop(st, l, rec, mute{}, logging.NewNop())

	reply := controlHandler(context.Background(), loop)(ipc.ControlMessage{Cmd: ipc.CmdSay, Text: "open calculator"})
	assert.True(t, reply.OK)
	assert.Equal(t, []string{"open calculator"}, rec.got)
}
