package executor

import (
	"bytes"
	"errors"
	log "log/slog"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// maxStderrBytes caps the stderr text kept from a blocking launch.
const maxStderrBytes = 64 * 1024

type Result struct {
	Succeeded  bool
	Diagnostic string
}

// Executor launches processes described by a launch spec (program + args).
type Executor struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.Default()
	}
	return &Executor{logger: logger.With("component", "executor")}
}

// Execute runs launch. With wait the call blocks until the child exits and a
// non-zero exit reports failure with the child's stderr; without wait it
// returns success as soon as the child has started. It never panics and
// never returns an error: launch problems become a failed Result.
func (e *Executor) Execute(launch []string, wait bool) Result {
	if len(launch) == 0 || launch[0] == "" {
		return Result{Diagnostic: "empty launch spec"}
	}

	cmd := exec.Command(launch[0], launch[1:]...)
	detach(cmd)

	e.logger.Debug("executing", "argv", launch, "wait", wait)

	if !wait {
		if err := cmd.Start(); err != nil {
			e.logger.Error("Execution failed", "argv", launch, "err", err)
			return Result{Diagnostic: err.Error()}
		}
		pid := cmd.Process.Pid
		go func() {
			err := cmd.Wait()
			e.logger.Debug("detached child exited", "pid", pid, "err", err)
		}()
		return Result{Succeeded: true}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return Result{Succeeded: true}
	}

	diag := truncate(strings.TrimSpace(stderr.String()))

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		e.logger.Error("Subprocess error", "argv", launch, "exit_code", exitErr.ExitCode(), "stderr", diag)
	} else {
		e.logger.Error("Execution failed", "argv", launch, "err", err)
	}

	if diag == "" {
		diag = err.Error()
	}
	return Result{Diagnostic: diag}
}

func truncate(s string) string {
	if len(s) <= maxStderrBytes {
		return s
	}
	cut := maxStderrBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "... (truncated)"
}
