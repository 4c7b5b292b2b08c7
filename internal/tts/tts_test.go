package tts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hero/internal/logging"
)

type flakySpeaker struct {
	err    error
	panics bool
	said   []string
}

func (s *flakySpeaker) Speak(_ context.Context, text string) error {
	if s.panics {
		panic("audio device vanished")
	}
	s.said = append(s.said, text)
	return s.err
}

func TestVoice_SwallowsFailures(t *testing.T) {
	sp := &flakySpeaker{err: errors.New("no output device")}
	v := NewVoice(sp, logging.NewNop())

	assert.NotPanics(t, func() { v.Say(context.Background(), "Done") })
	assert.Equal(t, []string{"Done"}, sp.said)

	v.Say(context.Background(), "")
	assert.Len(t, sp.said, 1)

	v = NewVoice(&flakySpeaker{panics: true}, logging.NewNop())
	assert.NotPanics(t, func() { v.Say(context.Background(), "Done") })
}

func TestCommand_Args(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		stdin bool
		want  []string
	}{
		{name: "appended", argv: []string{"say", "-r", "150"}, want: []string{"say", "-r", "150", "Time is 03:04 PM"}},
		{name: "placeholder", argv: []string{"espeak-ng", "--stdout={text}.wav", "{text}"}, want: []string{"espeak-ng", "--stdout=Time is 03:04 PM.wav", "Time is 03:04 PM"}},
		{name: "stdin", argv: []string{"powershell", "-Command", "-"}, stdin: true, want: []string{"powershell", "-Command", "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Command{argv: tt.argv, stdin: tt.stdin}
			assert.Equal(t, tt.want, c.args("Time is 03:04 PM"))
		})
	}
}

func TestCommand_Speak(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}
	out := filepath.Join(t.TempDir(), "spoken.txt")

	c, err := NewCommand([]string{"sh", "-c", "cat > " + out}, true)
	require.NoError(t, err)
	require.NoError(t, c.Speak(context.Background(), "Opening Calculator"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Opening Calculator", string(data))

	c, err = NewCommand([]string{"sh", "-c", "echo broken >&2; exit 2"}, true)
	require.NoError(t, err)
	err = c.Speak(context.Background(), "Done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Options{Engine: "festival"})
	assert.Error(t, err)

	_, err = New(Options{Engine: "command", Command: []string{"hero-no-such-synth"}})
	assert.Error(t, err)

	_, err = NewCommand(nil, false)
	assert.Error(t, err)
}
