package listen

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"sync"
	"time"
	"unicode"

	"hero/internal/audio"
	"hero/internal/stt"
)

var ErrNoWakeWord = errors.New("wake word not heard")

// Backoff after consecutive capture or transcription failures, so a dead
// device is not reopened every loop cycle.
const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// Capturer records one utterance as mono 16 kHz PCM.
type Capturer interface {
	Record(ctx context.Context, timeout, phraseLimit time.Duration) ([]float32, error)
}

// Cue signals that the assistant has started listening.
type Cue interface {
	Play() error
}

type Config struct {
	WakeWord    string
	Timeout     time.Duration
	PhraseLimit time.Duration
}

// Listener is the transcription capability used by the session loop. It
// never fails: every capture problem is logged and reported as no command.
type Listener struct {
	capturer Capturer
	stt      stt.Transcriber
	cue      Cue
	cfg      Config
	logger   *log.Logger

	mu       sync.Mutex
	failures int
	retryAt  time.Time
}

func New(c Capturer, tr stt.Transcriber, cue Cue, cfg Config, logger *log.Logger) *Listener {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.PhraseLimit <= 0 {
		cfg.PhraseLimit = 4 * time.Second
	}
	cfg.WakeWord = strings.ToLower(strings.TrimSpace(cfg.WakeWord))
	return &Listener{
		capturer: c,
		stt:      tr,
		cue:      cue,
		cfg:      cfg,
		logger:   logger.With("component", "listener"),
	}
}

// Listen returns the command that followed the wake word, with the wake
// word removed. ok is false when there is no command this cycle.
func (l *Listener) Listen(ctx context.Context) (string, bool) {
	if l.backingOff() {
		return "", false
	}
	text, err := l.capture(ctx)
	if err == nil {
		text, err = StripWakeWord(text, l.cfg.WakeWord)
	}
	return l.settle(text, err)
}

// ListenOnce is the click-to-talk variant: no wake word is required, but a
// leading one is dropped. It ignores the failure backoff.
func (l *Listener) ListenOnce(ctx context.Context) (string, bool) {
	text, err := l.capture(ctx)
	if err == nil {
		if words := strings.Fields(text); len(words) > 0 && words[0] == l.cfg.WakeWord {
			text = strings.Join(words[1:], " ")
		}
	}
	return l.settle(text, err)
}

func (l *Listener) capture(ctx context.Context) (string, error) {
	if l.cue != nil {
		if err := l.cue.Play(); err != nil {
			l.logger.Debug("cue failed", "err", err)
		}
	}
	l.logger.Debug("Listening...", "wake_word", l.cfg.WakeWord)

	pcm, err := l.capturer.Record(ctx, l.cfg.Timeout, l.cfg.PhraseLimit)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	raw, err := l.stt.Transcribe(ctx, pcm)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	text := Normalize(raw)
	l.logger.Info("Recognized command", "text", text)
	return text, nil
}

func (l *Listener) settle(text string, err error) (string, bool) {
	switch {
	case err == nil:
	case errors.Is(err, audio.ErrTimeout):
		l.logger.Debug("Listening timeout")
	case errors.Is(err, audio.ErrNoSpeech), errors.Is(err, stt.ErrNoAudio):
		l.logger.Debug("Speech not understood")
	case errors.Is(err, ErrNoWakeWord):
		l.logger.Debug("Wake word missing, ignoring utterance")
	case errors.Is(err, context.Canceled):
		l.logger.Debug("Listening cancelled")
		return "", false
	default:
		l.fail(err)
		return "", false
	}
	l.reset()
	if err != nil || text == "" {
		return "", false
	}
	return text, true
}

func (l *Listener) backingOff() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return time.Now().Before(l.retryAt)
}

// fail logs the first of a run of failures at error level and the rest at
// debug, and pushes the next gated capture out.
func (l *Listener) fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures++
	backoff := minBackoff << min(l.failures-1, 5)
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	l.retryAt = time.Now().Add(backoff)

	if l.failures == 1 {
		l.logger.Error("Listen error", "err", err)
		return
	}
	l.logger.Debug("Listen error", "err", err, "failures", l.failures, "retry_in", backoff)
}

func (l *Listener) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failures > 0 {
		l.logger.Info("Listening recovered", "failures", l.failures)
	}
	l.failures = 0
	l.retryAt = time.Time{}
}

// Normalize lowercases a transcript and reduces it to letters, digits and
// single spaces, so "Hero, open Calculator." becomes "hero open calculator".
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r), r == '\'', r == '-':
			return ' '
		default:
			return -1
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// StripWakeWord removes every occurrence of wake as a whole word. It fails
// with ErrNoWakeWord if wake does not occur. An empty wake accepts anything.
func StripWakeWord(text, wake string) (string, error) {
	if wake == "" {
		return text, nil
	}
	words := strings.Fields(text)
	kept := words[:0]
	found := false
	for _, w := range words {
		if w == wake {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		return "", ErrNoWakeWord
	}
	return strings.Join(kept, " "), nil
}
