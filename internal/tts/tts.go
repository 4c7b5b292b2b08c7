package tts

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
)

var ErrNotSupported = errors.New("speech engine not compiled in")

type Speaker interface {
	Speak(ctx context.Context, text string) error
}

type Options struct {
	Engine  string // "espeak" or "command"
	Voice   string
	Rate    int
	Command []string // argv template for the command engine; "{text}" is substituted
}

// New returns the configured speech engine. An error here means no spoken
// feedback is possible and callers treat it as fatal.
func New(opt Options) (Speaker, error) {
	switch opt.Engine {
	case "espeak":
		e, err := NewEspeak(opt.Voice, opt.Rate)
		if err != nil {
			return nil, err
		}
		return e, nil
	case "", "command":
		argv, stdin := opt.Command, false
		if len(argv) == 0 {
			argv, stdin = defaultCommand(opt.Rate)
		}
		c, err := NewCommand(argv, stdin)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown tts engine %q", opt.Engine)
	}
}

// Voice speaks on behalf of the assistant. Speech failures are logged and
// dropped so a broken speaker never interrupts command handling.
type Voice struct {
	sp     Speaker
	logger *log.Logger
}

func NewVoice(sp Speaker, logger *log.Logger) *Voice {
	if logger == nil {
		logger = log.Default()
	}
	return &Voice{sp: sp, logger: logger.With("component", "tts")}
}

func (v *Voice) Say(ctx context.Context, text string) {
	if text == "" {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("Speak failed", "panic", r)
		}
	}()

	v.logger.Debug("Speaking", "text", text)
	if err := v.sp.Speak(ctx, text); err != nil {
		v.logger.Error("Speak failed", "text", text, "err", err)
	}
}
