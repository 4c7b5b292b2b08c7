package executor

import "fmt"

// TerminateBy selects how a running application is identified for termination.
type TerminateBy string

const (
	ByTitle TerminateBy = "title"
	ByImage TerminateBy = "image"
)

func ParseTerminateBy(s string) (TerminateBy, error) {
	switch TerminateBy(s) {
	case ByTitle, ByImage:
		return TerminateBy(s), nil
	default:
		return "", fmt.Errorf("unknown terminate strategy %q (want title or image)", s)
	}
}

// Terminate returns the launch spec that forcibly ends target on this OS.
func Terminate(by TerminateBy, target string) []string {
	return terminateArgs(by, target)
}
