package notify_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"hero/internal/notify"
)

func TestNewBeeper_MissingFile(t *testing.T) {
	_, err := notify.NewBeeper(filepath.Join(t.TempDir(), "cue.mp3"))
	assert.Error(t, err)
}
