package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/random"
)

// StreamsFunc creates the random streams for one simulate call.
type StreamsFunc func() (random.Streams, error)

// Options configures a Simulator.
type Options struct {
	TrialCount    int
	Concurrency   int
	MaxAttemptCap int
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		TrialCount:    models.DefaultTrialCount,
		Concurrency:   1,
		MaxAttemptCap: 10_000_000,
	}
}

// Simulator validates simulate requests and runs them as batches. It holds no
// mutable state and is safe for concurrent use.
type Simulator struct {
	opts       Options
	newStreams StreamsFunc
	executor   TrialExecutor
	now        func() time.Time
}

// NewSimulator creates a simulator. A nil streams func seeds every call from
// crypto/rand.
func NewSimulator(opts Options, streams StreamsFunc) *Simulator {
	if opts.TrialCount <= 0 {
		opts.TrialCount = models.DefaultTrialCount
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if streams == nil {
		streams = EntropyStreamsFunc
	}
	return &Simulator{
		opts:       opts,
		newStreams: streams,
		executor:   NewTrialExecutor(),
		now:        time.Now,
	}
}

// EntropyStreamsFunc seeds fresh streams from crypto/rand on every call.
func EntropyStreamsFunc() (random.Streams, error) {
	return random.NewEntropyStreams()
}

// SeededStreamsFunc returns the same seeded streams on every call, making
// repeated simulations reproducible.
func SeededStreamsFunc(seed uint64) StreamsFunc {
	return func() (random.Streams, error) {
		return random.NewPCGStreams(seed), nil
	}
}

// Options returns the simulator's effective options.
func (s *Simulator) Options() Options {
	return s.opts
}

// Simulate validates the parameters, runs one batch and annotates it with the
// theoretical probability of success by the batch's average attempts. A
// *models.ValidationError is returned for rejected parameters; any other
// error wraps models.ErrInternal.
func (s *Simulator) Simulate(ctx context.Context, successRate float64, attemptCap *float64) (*models.SimulationReport, error) {
	startTime := s.now()

	attempts, err := Validate(successRate, attemptCap, s.opts.MaxAttemptCap)
	if err != nil {
		return nil, err
	}

	params := models.SimulationParameters{
		SuccessProbabilityPercent: successRate,
		AttemptCap:                attempts,
		TrialCount:                s.opts.TrialCount,
	}

	streams, err := s.newStreams()
	if err != nil {
		return nil, fmt.Errorf("%w: creating random streams: %w", models.ErrInternal, err)
	}

	batch, err := NewBatchRunner(s.executor, streams, s.opts.Concurrency).Run(ctx, params)
	if err != nil {
		return nil, err
	}

	theoretical := TheoreticalSuccessProbability(successRate, batch.AverageAttempts)
	endTime := s.now()
	return models.NewSimulationReport(batch, theoretical, endTime.Sub(startTime), endTime), nil
}

// WithTrialCount returns a copy of the simulator running n trials per batch.
// Non-positive n keeps the current count.
func (s *Simulator) WithTrialCount(n int) *Simulator {
	cp := *s
	if n > 0 {
		cp.opts.TrialCount = n
	}
	return &cp
}
