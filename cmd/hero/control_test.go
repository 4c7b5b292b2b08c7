package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"hero/internal/ipc"
	"hero/internal/logging"
	"hero/internal/session"
)

type onceListener struct{ text string }

func (l *onceListener) Listen(context.Context) (string, bool) { return "", false }

func (l *onceListener) ListenOnce(context.Context) (string, bool) {
	return l.text, l.text != ""
}

type recorder struct {
	state *session.State
	got   []string
}

func (r *recorder) Process(_ context.Context, text string) {
	r.got = append(r.got, text)
	if text == "shutdown" {
		r.state.Stop()
	}
}

type mute struct{}

func (mute) Say(context.Context, string) {}

func TestControlHandler(t *testing.T) {
	st := session.NewState()
	rec := &recorder{state: st}
	loop := session.NewLoop(st, &onceListener{text: "open notepad"}, rec, mute{}, logging.NewNop())
	h := controlHandler(context.Background(), loop)

	reply := h(ipc.ControlMessage{Cmd: ipc.CmdTrigger})
	assert.True(t, reply.OK)
	assert.Equal(t, "open notepad", reply.Text)

	reply = h(ipc.ControlMessage{Cmd: ipc.CmdSay, Text: "  what time is it "})
	assert.True(t, reply.OK)

	reply = h(ipc.ControlMessage{Cmd: ipc.CmdSay, Text: "   "})
	assert.False(t, reply.OK)

	reply = h(ipc.ControlMessage{Cmd: "reboot"})
	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "reboot")

	reply = h(ipc.ControlMessage{Cmd: ipc.CmdStop})
	assert.True(t, reply.OK)
	assert.False(t, loop.Running())

	reply = h(ipc.ControlMessage{Cmd: ipc.CmdSay, Text: "open notepad"})
	assert.False(t, reply.OK)

	assert.Equal(t, []string{"open notepad", "what time is it", "shutdown"}, rec.got)
}

func TestControlHandler_TriggerHeardNothing(t *testing.T) {
	st := session.NewState()
	loop := session.NewLoop(st, &onceListener{}, &recorder{state: st}, mute{}, logging.NewNop())

	reply := controlHandler(context.Background(), loop)(ipc.ControlMessage{Cmd: ipc.CmdTrigger})
	assert.False(t, reply.OK)
	assert.NotEmpty(t, reply.Error)
}
