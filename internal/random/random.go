// Package random provides the randomness capability used by the trial engine.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source yields uniformly distributed values in the half-open interval [0, 1).
type Source interface {
	Float64() float64
}

// Streams hands out one independent Source per trial index. Implementations
// must be safe to call from multiple goroutines with distinct indexes.
type Streams interface {
	Stream(index int) (Source, error)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}

// PCGStreams derives a PCG generator per trial from a single seed. The trial
// index selects the stream, so results do not depend on scheduling order.
type PCGStreams struct {
	seed uint64
}

// NewPCGStreams returns streams seeded with seed.
func NewPCGStreams(seed uint64) *PCGStreams {
	return &PCGStreams{seed: seed}
}

// NewEntropyStreams returns streams seeded from crypto/rand.
func NewEntropyStreams() (*PCGStreams, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewPCGStreams(seed), nil
}

// Seed returns the seed the streams were built from.
func (s *PCGStreams) Seed() uint64 {
	return s.seed
}

// Stream returns the generator for trial index.
func (s *PCGStreams) Stream(index int) (Source, error) {
	if index < 0 {
		return nil, fmt.Errorf("negative stream index %d", index)
	}
	return rand.New(rand.NewPCG(s.seed, uint64(index))), nil
}
