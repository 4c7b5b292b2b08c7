//go:build windows

package executor

func terminateArgs(by TerminateBy, target string) []string {
	if by == ByTitle {
		return []string{"taskkill", "/f", "/fi", "WINDOWTITLE eq " + target}
	}
	return []string{"taskkill", "/f", "/im", target}
}
