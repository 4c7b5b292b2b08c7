package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"hero/internal/executor"
	"hero/internal/ipc"
	"hero/internal/registry"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func Defaults() *Config {
	return &Config{
		WakeWord: "hero",
		LogFile:  "hero.log",
		Socket:   ipc.DefaultSocketPath,
		Listen: ListenConfig{
			Timeout:     5 * time.Second,
			PhraseLimit: 4 * time.Second,
			Threshold:   0.015,
		},
		STT: STTConfig{
			Backend:  "remote",
			Language: "en",
		},
		TTS: TTSConfig{
			Engine: "command",
			Rate:   150,
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is not
// an error. ${VAR} references are expanded from the environment, and
// HERO_WAKE_WORD, HERO_LOG_FILE and HERO_SOCKET override the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal([]byte(expandEnv(string(data))), cfg); err != nil {
				return nil, fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(m)[1])
	})
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HERO_WAKE_WORD"); v != "" {
		cfg.WakeWord = v
	}
	if v := os.Getenv("HERO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("HERO_SOCKET"); v != "" {
		cfg.Socket = v
	}
}

func (c *Config) Validate() error {
	c.WakeWord = strings.ToLower(strings.TrimSpace(c.WakeWord))

	if c.Listen.Timeout <= 0 {
		return fmt.Errorf("listen.timeout must be positive, got %s", c.Listen.Timeout)
	}
	if c.Listen.PhraseLimit <= 0 {
		return fmt.Errorf("listen.phrase_limit must be positive, got %s", c.Listen.PhraseLimit)
	}
	switch c.STT.Backend {
	case "remote", "whisper":
	default:
		return fmt.Errorf("stt.backend must be remote or whisper, got %q", c.STT.Backend)
	}
	if c.STT.Backend == "whisper" && c.STT.Model == "" {
		return errors.New("stt.model is required for the whisper backend")
	}
	switch c.TTS.Engine {
	case "command", "espeak":
	default:
		return fmt.Errorf("tts.engine must be command or espeak, got %q", c.TTS.Engine)
	}
	return nil
}

// Registry builds the action registry: the configured actions in file
// order, or the built-in table when none are configured.
func (c *Config) Registry() (*registry.Registry, error) {
	if len(c.Actions) == 0 {
		return registry.New(registry.Defaults())
	}

	specs := make([]registry.ActionSpec, 0, len(c.Actions))
	for i, a := range c.Actions {
		launch := a.Launch
		if a.Terminate != nil {
			if len(launch) > 0 {
				return nil, fmt.Errorf("action %d (%s): launch and terminate are exclusive", i, a.App)
			}
			if a.Terminate.Target == "" {
				return nil, fmt.Errorf("action %d (%s): terminate target is empty", i, a.App)
			}
			by, err := executor.ParseTerminateBy(a.Terminate.By)
			if err != nil {
				return nil, fmt.Errorf("action %d (%s): %w", i, a.App, err)
			}
			launch = executor.Terminate(by, a.Terminate.Target)
		}

		keywords := make([]string, len(a.Keywords))
		for j, k := range a.Keywords {
			keywords[j] = strings.ToLower(strings.TrimSpace(k))
		}

		specs = append(specs, registry.ActionSpec{
			Category: registry.Category(strings.ToLower(a.Category)),
			App:      a.App,
			Launch:   launch,
			Keywords: keywords,
			Phrase:   a.Phrase,
		})
	}
	return registry.New(specs)
}
