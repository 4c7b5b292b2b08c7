package nlu

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"hero/internal/executor"
	"hero/internal/registry"
	"hero/internal/session"
)

const (
	PhraseFarewell     = "Shutting down all HERO systems. Goodbye"
	PhraseShutdown     = "Shutting down"
	PhraseStopped      = "Command stopped"
	PhraseDone         = "Done"
	PhraseUnknownApp   = "Unknown application"
	PhraseNotRecognize = "Command not recognized"
	PhraseSystemError  = "System error"
)

const (
	terminatorToken = "shutdown"
	exitToken       = "exit"

	timeLayout = "03:04 PM"
	dateLayout = "Monday, January 02"

	farewellPause = 1500 * time.Millisecond
)

type Speaker interface {
	Say(ctx context.Context, text string)
}

type Executor interface {
	Execute(launch []string, wait bool) executor.Result
}

// Dispatcher classifies one transcript and carries out the matching action.
// It holds no state between calls apart from the shared session state.
type Dispatcher struct {
	reg     *registry.Registry
	speaker Speaker
	exec    Executor
	state   *session.State

	now    func() time.Time
	sleep  func(time.Duration)
	logger *log.Logger
}

type Option func(*Dispatcher)

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithSleep replaces the pause taken after the farewell phrase.
func WithSleep(sleep func(time.Duration)) Option {
	return func(d *Dispatcher) { d.sleep = sleep }
}

func WithLogger(logger *log.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

func NewDispatcher(reg *registry.Registry, sp Speaker, ex Executor, st *session.State, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:     reg,
		speaker: sp,
		exec:    ex,
		state:   st,
		now:     time.Now,
		sleep:   time.Sleep,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "dispatcher")
	return d
}

// Process handles one transcript. Faults inside a command never escape:
// they are logged and reported as a spoken system error.
func (d *Dispatcher) Process(ctx context.Context, transcript string) {
	command := strings.ToLower(strings.TrimSpace(transcript))
	if command == "" {
		return
	}

	logger := d.logger.With("cmd_id", uuid.NewString())
	logger.Debug("Processing", "command", command)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Process error", "panic", r)
			d.speaker.Say(ctx, PhraseSystemError)
		}
	}()

	if err := d.route(ctx, logger, command); err != nil {
		logger.Error("Process error", "err", err)
		d.speaker.Say(ctx, PhraseSystemError)
	}
}

func (d *Dispatcher) route(ctx context.Context, logger *log.Logger, command string) error {
	switch {
	case command == terminatorToken:
		d.terminate(ctx, PhraseFarewell)
	case command == exitToken:
		d.terminate(ctx, PhraseShutdown)
	case strings.Contains(command, "stop"):
		d.speaker.Say(ctx, PhraseStopped)
	case containsAny(command, "open", "launch"):
		return d.handleApp(ctx, logger, registry.Open, command)
	case containsAny(command, "close", "exit"):
		return d.handleApp(ctx, logger, registry.Close, command)
	case strings.Contains(command, "time"):
		d.speaker.Say(ctx, "Time is "+d.now().Format(timeLayout))
	case strings.Contains(command, "date"):
		d.speaker.Say(ctx, "Today is "+d.now().Format(dateLayout))
	default:
		d.speaker.Say(ctx, PhraseNotRecognize)
	}
	return nil
}

func (d *Dispatcher) terminate(ctx context.Context, phrase string) {
	d.speaker.Say(ctx, phrase)
	d.sleep(farewellPause)
	d.state.Stop()
}

func (d *Dispatcher) handleApp(ctx context.Context, logger *log.Logger, c registry.Category, command string) error {
	spec, ok, err := Match(d.reg, command, c)
	if err != nil {
		return fmt.Errorf("match %s: %w", c, err)
	}
	if !ok {
		logger.Info("no application matched", "category", c)
		d.speaker.Say(ctx, PhraseUnknownApp)
		return nil
	}

	logger.Info("Handling app command", "category", c, "app", spec.App)
	d.speaker.Say(ctx, spec.Phrase)

	res := d.exec.Execute(spec.Launch, waitFor(c))
	if res.Succeeded {
		d.speaker.Say(ctx, PhraseDone)
		return nil
	}

	logger.Warn("action failed", "category", c, "app", spec.App, "diagnostic", res.Diagnostic)
	d.speaker.Say(ctx, fmt.Sprintf("Failed to %s %s", c, spec.App))
	return nil
}

// waitFor reports whether actions of category c block until the child exits.
// Launched applications are long-lived; closing must be confirmed before "Done".
func waitFor(c registry.Category) bool {
	return c != registry.Open
}
