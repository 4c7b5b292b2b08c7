package session

import "sync/atomic"

// State is the process-wide session state. The dispatcher clears it on a
// shutdown command; the loop checks it before every cycle.
type State struct {
	running atomic.Bool
}

func NewState() *State {
	s := &State{}
	s.running.Store(true)
	return s
}

func (s *State) Running() bool { return s.running.Load() }

func (s *State) Stop() { s.running.Store(false) }
