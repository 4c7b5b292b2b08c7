package config

import "time"

// Config is the complete assistant configuration.
type Config struct {
	WakeWord string         `yaml:"wake_word"`
	LogFile  string         `yaml:"log_file"`
	Socket   string         `yaml:"socket"`
	Listen   ListenConfig   `yaml:"listen"`
	STT      STTConfig      `yaml:"stt"`
	TTS      TTSConfig      `yaml:"tts"`
	Actions  []ActionConfig `yaml:"actions,omitempty"`
}

type ListenConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	PhraseLimit time.Duration `yaml:"phrase_limit"`
	Threshold   float64       `yaml:"threshold"`
	Cue         string        `yaml:"cue"`   // mp3 played before each capture; empty disables
	Spool       string        `yaml:"spool"` // read utterances from this directory instead of the microphone
}

type STTConfig struct {
	Backend  string `yaml:"backend"` // "remote" or "whisper"
	Model    string `yaml:"model"`
	Language string `yaml:"language"`
	Prompt   string `yaml:"prompt"`
	Proxy    string `yaml:"proxy"` // SOCKS5 address for the remote backend
	Threads  int    `yaml:"threads"`
}

type TTSConfig struct {
	Engine  string   `yaml:"engine"` // "command" or "espeak"
	Voice   string   `yaml:"voice"`
	Rate    int      `yaml:"rate"`
	Command []string `yaml:"command,omitempty"`
}

// ActionConfig is one registry entry. Close actions may give Terminate
// instead of an explicit Launch.
type ActionConfig struct {
	Category  string           `yaml:"category"`
	App       string           `yaml:"app"`
	Launch    []string         `yaml:"launch,omitempty"`
	Terminate *TerminateConfig `yaml:"terminate,omitempty"`
	Keywords  []string         `yaml:"keywords"`
	Phrase    string           `yaml:"phrase"`
}

type TerminateConfig struct {
	By     string `yaml:"by"` // "title" or "image"
	Target string `yaml:"target"`
}
