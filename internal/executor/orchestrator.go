package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/random"
)

var tracer = otel.Tracer("github.com/spachava753/howmanytries/internal/executor")

// BatchRunner runs the trials of one batch and folds them into a BatchResult.
type BatchRunner struct {
	executor    TrialExecutor
	streams     random.Streams
	concurrency int
}

// NewBatchRunner creates a batch runner. A concurrency below 2 runs trials
// sequentially in trial order.
func NewBatchRunner(executor TrialExecutor, streams random.Streams, concurrency int) *BatchRunner {
	if executor == nil {
		executor = NewTrialExecutor()
	}
	return &BatchRunner{
		executor:    executor,
		streams:     streams,
		concurrency: concurrency,
	}
}

// Run executes params.TrialCount trials. Outcomes are reported in trial index
// order. Any trial failure fails the whole batch; there are no partial results.
func (r *BatchRunner) Run(ctx context.Context, params models.SimulationParameters) (*models.BatchResult, error) {
	ctx, span := tracer.Start(ctx, "executor.BatchRunner.Run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Float64("simulation.success_rate", params.SuccessProbabilityPercent),
			attribute.Int("simulation.attempt_cap", params.AttemptCap),
			attribute.Int("simulation.trials", params.TrialCount),
		))
	defer span.End()

	if params.TrialCount < 1 {
		err := fmt.Errorf("%w: trial count must be positive, got %d", models.ErrInternal, params.TrialCount)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	startTime := time.Now()
	outcomes := make([]models.TrialOutcome, params.TrialCount)

	nWorkers := r.concurrency
	if nWorkers > params.TrialCount {
		nWorkers = params.TrialCount
	}

	var err error
	if nWorkers <= 1 {
		err = r.runSequential(ctx, params, outcomes)
	} else {
		err = r.runConcurrent(ctx, params, outcomes, nWorkers)
	}
	if err != nil {
		batchesTotal.WithLabelValues("error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", models.ErrInternal, err)
	}

	result := aggregateOutcomes(params, outcomes)
	recordBatch(result, time.Since(startTime))

	span.SetAttributes(
		attribute.Int("simulation.successes", result.SuccessCount),
		attribute.Float64("simulation.average_attempts", result.AverageAttempts),
	)
	slog.Debug("batch completed",
		"success_rate", params.SuccessProbabilityPercent,
		"attempt_cap", params.AttemptCap,
		"trials", params.TrialCount,
		"successes", result.SuccessCount,
		"average_attempts", result.AverageAttempts,
		"duration", time.Since(startTime))

	return result, nil
}

func (r *BatchRunner) runSequential(ctx context.Context, params models.SimulationParameters, outcomes []models.TrialOutcome) error {
	for i := range outcomes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch cancelled before trial %d: %w", i, err)
		}
		outcome, err := r.runOne(ctx, params, i)
		if err != nil {
			return err
		}
		outcomes[i] = outcome
	}
	return nil
}

// runConcurrent fans trials out to nWorkers goroutines. Each trial writes only
// its own slot in outcomes, and draws from its own stream.
func (r *BatchRunner) runConcurrent(ctx context.Context, params models.SimulationParameters, outcomes []models.TrialOutcome, nWorkers int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(nWorkers)

	for i := range outcomes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("batch cancelled before trial %d: %w", i, err)
			}
			outcome, err := r.runOne(ctx, params, i)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}

	return g.Wait()
}

func (r *BatchRunner) runOne(ctx context.Context, params models.SimulationParameters, index int) (models.TrialOutcome, error) {
	src, err := r.streams.Stream(index)
	if err != nil {
		return models.TrialOutcome{}, fmt.Errorf("opening random stream for trial %d: %w", index, err)
	}
	outcome, err := r.executor.Execute(ctx, params.SuccessProbabilityPercent, params.AttemptCap, src)
	if err != nil {
		return models.TrialOutcome{}, fmt.Errorf("trial %d: %w", index, err)
	}
	return outcome, nil
}
