package scenario

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spachava753/howmanytries/internal/executor"
	"github.com/spachava753/howmanytries/internal/models"
)

// Result is the outcome of one scenario. Exactly one of Report and Err is set.
type Result struct {
	Suite    string
	Scenario models.Scenario
	Report   *models.SimulationReport
	Err      error
}

// Summary aggregates a suite run.
type Summary struct {
	Total            int
	Completed        int
	Rejected         int
	Failed           int
	TotalDurationSec float64
	Results          []Result
}

// Runner runs scenarios through a simulator.
type Runner struct {
	sim         *executor.Simulator
	concurrency int
}

// NewRunner creates a runner executing up to concurrency scenarios at once.
func NewRunner(sim *executor.Simulator, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{sim: sim, concurrency: concurrency}
}

// Run executes every scenario of every suite. Scenario errors are recorded in
// the results rather than aborting the run; cancellation stops it early and is
// returned as the run's error.
func (r *Runner) Run(ctx context.Context, suites []models.Suite) (*Summary, error) {
	startTime := time.Now()

	type job struct {
		suite string
		sim   *executor.Simulator
		sc    models.Scenario
	}
	var jobs []job
	for _, suite := range suites {
		sim := r.sim.WithTrialCount(suite.Trials)
		for _, sc := range suite.Scenarios {
			jobs = append(jobs, job{suite: suite.Name, sim: sim, sc: sc})
		}
	}

	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := j.sim.Simulate(gctx, j.sc.SuccessRate, j.sc.MaxAttempts)
			results[i] = Result{Suite: j.suite, Scenario: j.sc, Report: report, Err: err}
			if err != nil {
				slog.Warn("scenario failed", "suite", j.suite, "scenario", j.sc.Name, "error", err)
			} else {
				slog.Debug("scenario completed", "suite", j.suite, "scenario", j.sc.Name,
					"average_attempts", report.AverageAttempts)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A scenario interrupted by cancellation is not a scenario failure.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Total:   len(results),
		Results: results,
	}
	for _, res := range results {
		switch {
		case res.Err == nil:
			summary.Completed++
		case models.IsValidation(res.Err):
			summary.Rejected++
		default:
			summary.Failed++
		}
	}
	summary.TotalDurationSec = time.Since(startTime).Seconds()

	return summary, nil
}
