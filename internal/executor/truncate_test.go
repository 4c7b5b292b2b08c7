package executor

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	short := "process not found"
	assert.Equal(t, short, truncate(short))

	// "é" is two bytes; the odd prefix puts a rune across the cap.
	long := "x" + strings.Repeat("é", maxStderrBytes)
	out := truncate(long)
	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "... (truncated)"))
	assert.LessOrEqual(t, len(out), maxStderrBytes+len("... (truncated)"))
}
