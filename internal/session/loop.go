package session

import (
	"context"
	log "log/slog"
	"sync"
	"time"
)

const (
	PhraseStartup   = "Enabling All HERO systems, All HERO systems Activated."
	PhraseEmergency = "Emergency shutdown"
)

// Listener is the transcription capability. Listen requires the wake word;
// ListenOnce is the click-to-talk variant that does not.
type Listener interface {
	Listen(ctx context.Context) (string, bool)
	ListenOnce(ctx context.Context) (string, bool)
}

type Dispatcher interface {
	Process(ctx context.Context, transcript string)
}

type Speaker interface {
	Say(ctx context.Context, text string)
}

// Loop drives capture and dispatch. Every path into the dispatcher takes mu,
// so a trigger from the control socket never overlaps a loop cycle.
type Loop struct {
	mu sync.Mutex

	state    *State
	listener Listener
	disp     Dispatcher
	speaker  Speaker
	idle     time.Duration
	logger   *log.Logger
}

func NewLoop(st *State, l Listener, d Dispatcher, sp Speaker, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{
		state:    st,
		listener: l,
		disp:     d,
		speaker:  sp,
		idle:     100 * time.Millisecond,
		logger:   logger.With("component", "session"),
	}
}

// Run announces startup and cycles until the session state is cleared or ctx
// is cancelled. Cancellation is reported as an emergency shutdown and
// returned as ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	l.speaker.Say(ctx, PhraseStartup)
	l.logger.Info("session started")

	for l.state.Running() {
		if err := ctx.Err(); err != nil {
			l.logger.Warn("session interrupted", "err", err)
			l.speaker.Say(context.WithoutCancel(ctx), PhraseEmergency)
			return err
		}
		if !l.cycle(ctx) {
			select {
			case <-ctx.Done():
			case <-time.After(l.idle):
			}
		}
	}

	l.logger.Info("session stopped")
	return nil
}

func (l *Loop) cycle(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.state.Running() {
		return true
	}
	text, ok := l.listener.Listen(ctx)
	if !ok {
		return false
	}
	l.disp.Process(ctx, text)
	return true
}

// Trigger captures one utterance without the wake-word gate and dispatches it.
// It returns the transcript that was dispatched, if any.
func (l *Loop) Trigger(ctx context.Context) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	text, ok := l.listener.ListenOnce(ctx)
	if !ok {
		return "", false
	}
	l.disp.Process(ctx, text)
	return text, true
}

// Say dispatches a typed transcript as if it had been spoken.
func (l *Loop) Say(ctx context.Context, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.disp.Process(ctx, text)
}

func (l *Loop) Running() bool { return l.state.Running() }
