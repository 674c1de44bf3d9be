package random

import (
	"errors"
	"sync"
)

// ErrExhausted is returned by ScriptedStreams.Stream when no values are
// scripted for the requested index.
var ErrExhausted = errors.New("scripted source exhausted")

// Scripted replays a fixed sequence of draws. Once the values run out it keeps
// returning the last one. Values are in [0, 1).
type Scripted struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewScripted returns a Source replaying values in order.
func NewScripted(values ...float64) *Scripted {
	return &Scripted{values: values}
}

// Float64 returns the next scripted value.
func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *Scripted) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// ScriptedStreams hands out a fresh Scripted source per trial index, built by fn.
type ScriptedStreams struct {
	fn func(index int) []float64
}

// NewScriptedStreams returns streams whose trial index i replays fn(i).
func NewScriptedStreams(fn func(index int) []float64) *ScriptedStreams {
	return &ScriptedStreams{fn: fn}
}

// Stream returns the scripted source for index.
func (s *ScriptedStreams) Stream(index int) (Source, error) {
	values := s.fn(index)
	if values == nil {
		return nil, ErrExhausted
	}
	return NewScripted(values...), nil
}
