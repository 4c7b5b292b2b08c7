//go:build windows

package executor

import (
	"os/exec"
	"syscall"
)

// createNoWindow suppresses the console window of console programs such as
// taskkill. GUI applications still show their own windows.
const createNoWindow = 0x08000000

func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNoWindow}
}
