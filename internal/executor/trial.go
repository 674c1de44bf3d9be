package executor

import (
	"context"
	"fmt"

	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/random"
)

// cancelCheckInterval is how many draws a trial makes between context checks.
const cancelCheckInterval = 4096

// TrialExecutor executes a single trial and returns the outcome.
type TrialExecutor interface {
	Execute(ctx context.Context, successRate float64, attemptCap int, src random.Source) (models.TrialOutcome, error)
}

// DefaultTrialExecutor runs trials with RunTrial semantics and honors cancellation.
type DefaultTrialExecutor struct{}

// NewTrialExecutor creates a new trial executor.
func NewTrialExecutor() *DefaultTrialExecutor {
	return &DefaultTrialExecutor{}
}

// Execute draws from src until the first success or until attemptCap draws.
func (e *DefaultTrialExecutor) Execute(ctx context.Context, successRate float64, attemptCap int, src random.Source) (models.TrialOutcome, error) {
	if attemptCap < 1 {
		return models.TrialOutcome{}, fmt.Errorf("attempt cap must be positive, got %d", attemptCap)
	}
	if src == nil {
		return models.TrialOutcome{}, fmt.Errorf("nil random source")
	}

	for attempts := 1; attempts <= attemptCap; attempts++ {
		if attempts%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return models.TrialOutcome{}, fmt.Errorf("trial cancelled after %d attempts: %w", attempts-1, err)
			}
		}

		r := src.Float64() * 100
		if r <= successRate {
			return models.TrialOutcome{AttemptsUsed: attempts, Succeeded: true}, nil
		}
	}

	return models.TrialOutcome{
		AttemptsUsed: attemptCap,
		Succeeded:    false,
		CapReached:   true,
	}, nil
}

// RunTrial runs one bounded sequence of Bernoulli draws with per-attempt
// success probability successRate (percent) and returns the outcome.
//
// Each draw r is src.Float64()*100, in [0, 100), and counts as a success when
// r <= successRate. With successRate 100 every draw qualifies. With successRate
// 0 a draw qualifies only if the source returns exactly 0; math/rand/v2 can do
// so with probability 2^-53 per draw, so a zero rate is not a guaranteed failure.
func RunTrial(successRate float64, attemptCap int, src random.Source) models.TrialOutcome {
	outcome, err := NewTrialExecutor().Execute(context.Background(), successRate, attemptCap, src)
	if err != nil {
		// Only reachable through a non-positive cap or nil source.
		panic(err)
	}
	return outcome
}
