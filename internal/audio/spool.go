package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const spoolPoll = 200 * time.Millisecond

// Spool is a capture source backed by a directory of audio files. Each
// Record call consumes the oldest file, which lets the assistant run
// headless or be driven by recorded utterances.
type Spool struct {
	fs  afero.Fs
	dir string
}

func NewSpool(fs afero.Fs, dir string) (*Spool, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("spool dir: %w", err)
	}
	return &Spool{fs: fs, dir: dir}, nil
}

// Record waits up to timeout for a file to appear, decodes it and removes it.
// phraseLimit truncates long recordings.
func (s *Spool) Record(ctx context.Context, timeout, phraseLimit time.Duration) ([]float32, error) {
	deadline := time.Now().Add(timeout)
	for {
		name, err := s.next()
		if err != nil {
			return nil, err
		}
		if name != "" {
			return s.consume(name, phraseLimit)
		}
		if time.Now().After(deadline) {
			return nil, ErrTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(spoolPoll):
		}
	}
}

func (s *Spool) next() (string, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return "", fmt.Errorf("read spool: %w", err)
	}
	var files []string
	mod := make(map[string]time.Time)
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		if _, ok := decoders[strings.ToLower(filepath.Ext(fi.Name()))]; !ok {
			continue
		}
		files = append(files, fi.Name())
		mod[fi.Name()] = fi.ModTime()
	}
	if len(files) == 0 {
		return "", nil
	}
	sort.SliceStable(files, func(i, j int) bool {
		return mod[files[i]].Before(mod[files[j]])
	})
	return files[0], nil
}

func (s *Spool) consume(name string, phraseLimit time.Duration) ([]float32, error) {
	p := filepath.Join(s.dir, name)
	defer s.fs.Remove(p)

	f, err := s.fs.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pcm, err := Decode(f, filepath.Ext(name), int(phraseLimit.Seconds()*SampleRate))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(pcm) == 0 {
		return nil, ErrNoSpeech
	}
	return pcm, nil
}
