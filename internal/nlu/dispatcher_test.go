package nlu_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hero/internal/executor"
	"hero/internal/logging"
	"hero/internal/nlu"
	"hero/internal/registry"
	"hero/internal/session"
)

type recordingSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (s *recordingSpeaker) Say(_ context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
}

func (s *recordingSpeaker) phrases() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

type call struct {
	launch []string
	wait   bool
}

type fakeExecutor struct {
	result executor.Result
	calls  []call
	panics bool
}

func (e *fakeExecutor) Execute(launch []string, wait bool) executor.Result {
	if e.panics {
		panic("boom")
	}
	e.calls = append(e.calls, call{launch: launch, wait: wait})
	return e.result
}

type fixture struct {
	disp    *nlu.Dispatcher
	speaker *recordingSpeaker
	exec    *fakeExecutor
	state   *session.State
	pauses  []time.Duration
}

func newFixture(t *testing.T, res executor.Result) *fixture {
	t.Helper()

	reg, err := registry.New([]registry.ActionSpec{
		{Category: registry.Open, App: "calculator", Launch: []string{"calc"}, Keywords: []string{"calculator", "calc"}, Phrase: "Opening Calculator"},
		{Category: registry.Open, App: "notepad", Launch: []string{"notepad"}, Keywords: []string{"notepad", "editor"}, Phrase: "Opening Notepad"},
		{Category: registry.Close, App: "calculator", Launch: []string{"taskkill", "/f", "/fi", "WINDOWTITLE eq Calculator"}, Keywords: []string{"calculator", "calc"}, Phrase: "Closing Calculator"},
		{Category: registry.Close, App: "notepad", Launch: []string{"taskkill", "/f", "/im", "notepad.exe"}, Keywords: []string{"notepad", "editor"}, Phrase: "Closing Notepad"},
	})
	require.NoError(t, err)

	f := &fixture{
		speaker: &recordingSpeaker{},
		exec:    &fakeExecutor{result: res},
		state:   session.NewState(),
	}
	clock := func() time.Time { return time.Date(2024, time.January, 15, 15, 4, 0, 0, time.UTC) }
	f.disp = nlu.NewDispatcher(reg, f.speaker, f.exec, f.state,
		nlu.WithClock(clock),
		nlu.WithSleep(func(d time.Duration) { f.pauses = append(f.pauses, d) }),
		nlu.WithLogger(logging.NewNop()),
	)
	return f
}

func TestProcess_OpenApplication(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "open calculator")

	assert.Equal(t, []string{"Opening Calculator", "Done"}, f.speaker.phrases())
	require.Len(t, f.exec.calls, 1)
	assert.Equal(t, []string{"calc"}, f.exec.calls[0].launch)
	assert.False(t, f.exec.calls[0].wait)
	assert.True(t, f.state.Running())
}

func TestProcess_LaunchSynonym(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "please launch the editor")

	assert.Equal(t, []string{"Opening Notepad", "Done"}, f.speaker.phrases())
}

func TestProcess_CloseFailure(t *testing.T) {
	f := newFixture(t, executor.Result{Diagnostic: "process not found"})

	f.disp.Process(context.Background(), "close notepad")

	assert.Equal(t, []string{"Closing Notepad", "Failed to close notepad"}, f.speaker.phrases())
	require.Len(t, f.exec.calls, 1)
	assert.True(t, f.exec.calls[0].wait)
	assert.True(t, f.state.Running())
}

func TestProcess_ExitWithApplicationCloses(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "exit calculator")

	assert.Equal(t, []string{"Closing Calculator", "Done"}, f.speaker.phrases())
	assert.True(t, f.state.Running())
}

func TestProcess_OpenFailure(t *testing.T) {
	f := newFixture(t, executor.Result{Diagnostic: "executable file not found"})

	f.disp.Process(context.Background(), "open notepad")

	assert.Equal(t, []string{"Opening Notepad", "Failed to open notepad"}, f.speaker.phrases())
}

func TestProcess_Shutdown(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "Shutdown")

	assert.Equal(t, []string{nlu.PhraseFarewell}, f.speaker.phrases())
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, f.pauses)
	assert.False(t, f.state.Running())
	assert.Empty(t, f.exec.calls)
}

func TestProcess_BareExit(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), " exit ")

	assert.Equal(t, []string{nlu.PhraseShutdown}, f.speaker.phrases())
	assert.False(t, f.state.Running())
	assert.Empty(t, f.exec.calls)
}

func TestProcess_Stop(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "stop opening calculator")

	assert.Equal(t, []string{nlu.PhraseStopped}, f.speaker.phrases())
	assert.Empty(t, f.exec.calls)
	assert.True(t, f.state.Running())
}

func TestProcess_TimeAndDate(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "what time is it")
	f.disp.Process(context.Background(), "what is the date")

	assert.Equal(t, []string{"Time is 03:04 PM", "Today is Monday, January 15"}, f.speaker.phrases())
	assert.Empty(t, f.exec.calls)
}

func TestProcess_NotRecognized(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "banana")

	assert.Equal(t, []string{nlu.PhraseNotRecognize}, f.speaker.phrases())
	assert.Empty(t, f.exec.calls)
}

func TestProcess_UnknownApplication(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "open spotify")

	assert.Equal(t, []string{nlu.PhraseUnknownApp}, f.speaker.phrases())
	assert.Empty(t, f.exec.calls)
}

func TestProcess_EmptyTranscript(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	for _, in := range []string{"", "   ", "\t\n"} {
		f.disp.Process(context.Background(), in)
	}

	assert.Empty(t, f.speaker.phrases())
	assert.Empty(t, f.exec.calls)
	assert.True(t, f.state.Running())
}

func TestProcess_Repeatable(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "open calculator")
	first := f.speaker.phrases()
	f.disp.Process(context.Background(), "open calculator")

	assert.Equal(t, append(first, first...), f.speaker.phrases())
	require.Len(t, f.exec.calls, 2)
	assert.Equal(t, f.exec.calls[0], f.exec.calls[1])
}

func TestProcess_FirstRegisteredWins(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})

	f.disp.Process(context.Background(), "open notepad and calculator")

	assert.Equal(t, []string{"Opening Calculator", "Done"}, f.speaker.phrases())
}

func TestProcess_PanicBecomesSystemError(t *testing.T) {
	f := newFixture(t, executor.Result{Succeeded: true})
	f.exec.panics = true

	assert.NotPanics(t, func() {
		f.disp.Process(context.Background(), "open calculator")
	})
	assert.Equal(t, []string{"Opening Calculator", nlu.PhraseSystemError}, f.speaker.phrases())
	assert.True(t, f.state.Running())
}
