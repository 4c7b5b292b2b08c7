package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

const textPlaceholder = "{text}"

// Command speaks by running an external synthesizer and waiting for it.
type Command struct {
	argv  []string
	stdin bool
}

// NewCommand checks that the synthesizer exists. With stdin the text is
// written to the child's standard input; otherwise it replaces "{text}" in
// argv, or is appended when no placeholder is present.
func NewCommand(argv []string, stdin bool) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("empty speech command")
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("speech command: %w", err)
	}
	return &Command{argv: append([]string(nil), argv...), stdin: stdin}, nil
}

func (c *Command) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	args := c.args(text)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if c.stdin {
		cmd.Stdin = strings.NewReader(text)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (c *Command) args(text string) []string {
	out := make([]string, 0, len(c.argv)+1)
	replaced := c.stdin
	for _, a := range c.argv {
		if strings.Contains(a, textPlaceholder) {
			a = strings.ReplaceAll(a, textPlaceholder, text)
			replaced = true
		}
		out = append(out, a)
	}
	if !replaced {
		out = append(out, text)
	}
	return out
}

func defaultCommand(rate int) ([]string, bool) {
	if rate <= 0 {
		rate = 150
	}
	switch runtime.GOOS {
	case "windows":
		script := "Add-Type -AssemblyName System.Speech; " +
			"$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; " +
			"$s.Speak([Console]::In.ReadToEnd())"
		return []string{"powershell", "-NoProfile", "-NonInteractive", "-Command", script}, true
	case "darwin":
		return []string{"say", "-r", strconv.Itoa(rate)}, false
	default:
		return []string{"espeak-ng", "-s", strconv.Itoa(rate)}, false
	}
}
