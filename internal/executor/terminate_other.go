//go:build !windows

package executor

import "strings"

func terminateArgs(by TerminateBy, target string) []string {
	if by == ByTitle {
		return []string{"pkill", "-f", target}
	}
	return []string{"pkill", "-x", strings.TrimSuffix(target, ".exe")}
}
