package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	log "log/slog"

	"hero/internal/audio"
	"hero/internal/config"
	"hero/internal/executor"
	"hero/internal/ipc"
	"hero/internal/listen"
	"hero/internal/logging"
	"hero/internal/nlu"
	"hero/internal/notify"
	"hero/internal/proxy"
	"hero/internal/session"
	"hero/internal/stt"
	"hero/internal/tts"
)

func main() {
	configPath := cli.StringP("config", "c", "hero.yaml", "Config file path")
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	spoolDir := cli.String("spool", "", "Read utterances from audio files in this directory instead of the microphone")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks proxy address for remote transcription")
	cli.Parse()

	godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *spoolDir != "" {
		cfg.Listen.Spool = *spoolDir
	}
	if *proxyAddr != "" {
		cfg.STT.Proxy = *proxyAddr
	}

	logger, logFile, err := logging.New(os.Stdout, cfg.LogFile, logging.ParseLevel(*logLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	log.SetDefault(logger)

	code := run(cfg, logger)

	log.Info("System shutdown")
	logFile.Close()
	os.Exit(code)
}

func run(cfg *config.Config, logger *log.Logger) int {
	log.Info("Booting up")

	speaker, err := tts.New(tts.Options{
		Engine:  cfg.TTS.Engine,
		Voice:   cfg.TTS.Voice,
		Rate:    cfg.TTS.Rate,
		Command: cfg.TTS.Command,
	})
	if err != nil {
		log.Error("TTS Failed", "err", err)
		return 1
	}
	if c, ok := speaker.(io.Closer); ok {
		defer c.Close()
	}
	voice := tts.NewVoice(speaker, logger)

	reg, err := cfg.Registry()
	if err != nil {
		log.Error("Invalid action registry", "err", err)
		return 1
	}
	log.Debug("Loaded registry", "actions", reg.Len())

	capturer, closeCapture := newCapturer(cfg)
	defer closeCapture()

	transcriber, err := newTranscriber(cfg)
	if err != nil {
		log.Error("Failed to init transcription", "backend", cfg.STT.Backend, "err", err)
		return 1
	}
	if c, ok := transcriber.(io.Closer); ok {
		defer c.Close()
	}

	var cue listen.Cue
	if cfg.Listen.Cue != "" {
		b, err := notify.NewBeeper(cfg.Listen.Cue)
		if err != nil {
			log.Warn("Listening cue disabled", "err", err)
		} else {
			cue = b
		}
	}

	listener := listen.New(capturer, transcriber, cue, listen.Config{
		WakeWord:    cfg.WakeWord,
		Timeout:     cfg.Listen.Timeout,
		PhraseLimit: cfg.Listen.PhraseLimit,
	}, logger)

	state := session.NewState()
	disp := nlu.NewDispatcher(reg, voice, executor.New(logger), state, nlu.WithLogger(logger))
	loop := session.NewLoop(state, listener, disp, voice, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := ipc.StartServer(cfg.Socket, controlHandler(ctx, loop))
	if err != nil {
		log.Warn("Control socket disabled", "socket", cfg.Socket, "err", err)
	} else {
		defer srv.Close()
	}

	log.Info("Boot up - successful", "wake_word", cfg.WakeWord, "stt", cfg.STT.Backend)

	if err := loop.Run(ctx); err != nil {
		log.Warn("Session ended", "err", err)
	}
	return 0
}

// newCapturer opens the spool or the microphone. A source that cannot start
// is replaced by one that always fails, so the session still runs and takes
// commands from hero-ctl.
func newCapturer(cfg *config.Config) (listen.Capturer, func()) {
	if cfg.Listen.Spool != "" {
		s, err := audio.NewSpool(nil, cfg.Listen.Spool)
		if err != nil {
			log.Error("Failed to open spool, voice input disabled", "dir", cfg.Listen.Spool, "err", err)
			return audio.Unavailable{Err: err}, func() {}
		}
		log.Info("Reading utterances from spool", "dir", cfg.Listen.Spool)
		return s, func() {}
	}

	rec := audio.NewRecorder(cfg.Listen.Threshold)
	if err := rec.Init(); err != nil {
		log.Error("Failed to init audio, voice input disabled", "err", err)
		return audio.Unavailable{Err: err}, func() {}
	}
	return rec, rec.Close
}

func newTranscriber(cfg *config.Config) (stt.Transcriber, error) {
	opt := stt.Options{
		Model:         cfg.STT.Model,
		Language:      cfg.STT.Language,
		InitialPrompt: cfg.STT.Prompt,
		Threads:       cfg.STT.Threads,
	}

	if cfg.STT.Backend == "whisper" {
		w, err := stt.NewWhisper(opt)
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	httpClient, err := proxy.NewSocksClient(cfg.STT.Proxy)
	if err != nil {
		return nil, fmt.Errorf("dial socks proxy %s: %w", cfg.STT.Proxy, err)
	}
	r, err := stt.NewRemote(os.Getenv("OPENAI_API_KEY"), httpClient, opt)
	if err != nil {
		return nil, err
	}
	return r, nil
}
