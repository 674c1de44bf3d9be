package executor_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/spachava753/howmanytries/internal/executor"
	"github.com/spachava753/howmanytries/internal/i18n"
	"github.com/spachava753/howmanytries/internal/models"
	"github.com/spachava753/howmanytries/internal/random"
)

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// failThenSucceed scripts failures misses followed by one success for p=50.
func failThenSucceed(misses int) []float64 {
	return append(repeat(0.9, misses), 0.1)
}

func TestBatchCountsAlwaysAddUp(t *testing.T) {
	ctx := context.Background()
	for _, n := range []int{1, 2, 5, 17, 64} {
		for _, p := range []float64{0.5, 10, 50, 100} {
			runner := executor.NewBatchRunner(nil, random.NewPCGStreams(uint64(n)), 1)
			result, err := runner.Run(ctx, models.SimulationParameters{
				SuccessProbabilityPercent: p,
				AttemptCap:                50,
				TrialCount:                n,
			})
			if err != nil {
				t.Fatalf("n=%d p=%v: %v", n, p, err)
			}
			if len(result.Outcomes) != n {
				t.Fatalf("n=%d p=%v: expected %d outcomes, got %d", n, p, n, len(result.Outcomes))
			}
			if result.SuccessCount+result.FailureCount != n {
				t.Errorf("n=%d p=%v: %d successes + %d failures != %d", n, p, result.SuccessCount, result.FailureCount, n)
			}
		}
	}
}

func TestBatchNoSuccessesFallsBackToCap(t *testing.T) {
	streams := random.NewScriptedStreams(func(int) []float64 { return []float64{0.99} })
	runner := executor.NewBatchRunner(nil, streams, 1)

	result, err := runner.Run(context.Background(), models.SimulationParameters{
		SuccessProbabilityPercent: 50,
		AttemptCap:                37,
		TrialCount:                5,
	})
	if err != nil {
		t.Fatalf("running batch: %v", err)
	}

	if result.SuccessCount != 0 {
		t.Fatalf("expected no successes, got %d", result.SuccessCount)
	}
	if result.AverageAttempts != 37 {
		t.Errorf("expected average attempts to equal cap 37, got %v", result.AverageAttempts)
	}
	if !result.AnyCapReached {
		t.Error("expected AnyCapReached")
	}
}

func TestBatchSingleTrialHitsCap(t *testing.T) {
	streams := random.NewScriptedStreams(func(int) []float64 { return repeat(0.9, 10) })
	runner := executor.NewBatchRunner(nil, streams, 1)

	result, err := runner.Run(context.Background(), models.SimulationParameters{
		SuccessProbabilityPercent: 50,
		AttemptCap:                10,
		TrialCount:                1,
	})
	if err != nil {
		t.Fatalf("running batch: %v", err)
	}

	o := result.Outcomes[0]
	if o.AttemptsUsed != 10 || o.Succeeded || !o.CapReached {
		t.Errorf("expected {10 false true}, got %+v", o)
	}
}

func TestBatchAverageOnlyCountsSuccesses(t *testing.T) {
	// Trials: success at 2, cap (5) failure, success at 4 -> mean of 2 and 4.
	scripts := map[int][]float64{
		0: failThenSucceed(1),
		1: repeat(0.9, 5),
		2: failThenSucceed(3),
	}
	streams := random.NewScriptedStreams(func(i int) []float64 { return scripts[i] })
	runner := executor.NewBatchRunner(nil, streams, 1)

	result, err := runner.Run(context.Background(), models.SimulationParameters{
		SuccessProbabilityPercent: 50,
		AttemptCap:                5,
		TrialCount:                3,
	})
	if err != nil {
		t.Fatalf("running batch: %v", err)
	}

	if result.SuccessCount != 2 || result.FailureCount != 1 {
		t.Errorf("expected 2 successes and 1 failure, got %d/%d", result.SuccessCount, result.FailureCount)
	}
	if result.AverageAttempts != 3 {
		t.Errorf("expected average 3, got %v", result.AverageAttempts)
	}
	if !result.AnyCapReached {
		t.Error("expected AnyCapReached")
	}
	want := []int{2, 5, 4}
	for i, o := range result.Outcomes {
		if o.AttemptsUsed != want[i] {
			t.Errorf("outcome %d: expected %d attempts, got %d", i, want[i], o.AttemptsUsed)
		}
	}
}

// TestBatchRoundsHalfAwayFromZero pins the rounding rule: 199 trials of 7
// attempts and one of 8 give a raw mean of 1401/200 = 7.005, reported as 7.01.
func TestBatchRoundsHalfAwayFromZero(t *testing.T) {
	streams := random.NewScriptedStreams(func(i int) []float64 {
		if i == 199 {
			return failThenSucceed(7)
		}
		return failThenSucceed(6)
	})

	for _, concurrency := range []int{1, 8} {
		runner := executor.NewBatchRunner(nil, streams, concurrency)
		result, err := runner.Run(context.Background(), models.SimulationParameters{
			SuccessProbabilityPercent: 50,
			AttemptCap:                1000,
			TrialCount:                200,
		})
		if err != nil {
			t.Fatalf("concurrency %d: %v", concurrency, err)
		}
		if result.AverageAttempts != 7.01 {
			t.Errorf("concurrency %d: expected 7.01, got %v", concurrency, result.AverageAttempts)
		}
	}
}

func TestBatchConcurrencyDoesNotChangeOutcomes(t *testing.T) {
	params := models.SimulationParameters{
		SuccessProbabilityPercent: 3,
		AttemptCap:                200,
		TrialCount:                32,
	}

	sequential, err := executor.NewBatchRunner(nil, random.NewPCGStreams(99), 1).Run(context.Background(), params)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	concurrent, err := executor.NewBatchRunner(nil, random.NewPCGStreams(99), 6).Run(context.Background(), params)
	if err != nil {
		t.Fatalf("concurrent: %v", err)
	}

	for i := range sequential.Outcomes {
		if sequential.Outcomes[i] != concurrent.Outcomes[i] {
			t.Fatalf("outcome %d differs: %+v vs %+v", i, sequential.Outcomes[i], concurrent.Outcomes[i])
		}
	}
	if sequential.AverageAttempts != concurrent.AverageAttempts {
		t.Errorf("average differs: %v vs %v", sequential.AverageAttempts, concurrent.AverageAttempts)
	}
}

type failingStreams struct{}

func (failingStreams) Stream(index int) (random.Source, error) {
	if index == 2 {
		return nil, errors.New("entropy unavailable")
	}
	return random.NewScripted(0.1), nil
}

func TestBatchFailsAsAWhole(t *testing.T) {
	for _, concurrency := range []int{1, 3} {
		result, err := executor.NewBatchRunner(nil, failingStreams{}, concurrency).Run(context.Background(), models.SimulationParameters{
			SuccessProbabilityPercent: 50,
			AttemptCap:                10,
			TrialCount:                5,
		})
		if err == nil {
			t.Fatalf("concurrency %d: expected error", concurrency)
		}
		if !errors.Is(err, models.ErrInternal) {
			t.Errorf("concurrency %d: expected ErrInternal, got %v", concurrency, err)
		}
		if result != nil {
			t.Errorf("concurrency %d: expected no partial result", concurrency)
		}
	}
}

func TestBatchRejectsNonPositiveTrialCount(t *testing.T) {
	_, err := executor.NewBatchRunner(nil, random.NewPCGStreams(1), 1).Run(context.Background(), models.SimulationParameters{
		SuccessProbabilityPercent: 50,
		AttemptCap:                10,
	})
	if !errors.Is(err, models.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		rate      float64
		cap       *float64
		limit     int
		wantCap   int
		wantField string
		wantMsg   string
	}{
		{name: "defaults cap", rate: 25, wantCap: 1000},
		{name: "explicit cap", rate: 25, cap: ptr(50.0), wantCap: 50},
		{name: "full certainty", rate: 100, wantCap: 1000},
		{name: "tiny rate accepted", rate: 0.0001, wantCap: 1000},
		{name: "zero rate rejected", rate: 0, wantField: "successRate", wantMsg: i18n.MsgSuccessRate},
		{name: "negative zero rejected", rate: math.Copysign(0, -1), wantField: "successRate", wantMsg: i18n.MsgSuccessRate},
		{name: "negative rate", rate: -1, wantField: "successRate", wantMsg: i18n.MsgSuccessRate},
		{name: "rate above 100", rate: 101, wantField: "successRate", wantMsg: i18n.MsgSuccessRate},
		{name: "NaN rate", rate: math.NaN(), wantField: "successRate", wantMsg: i18n.MsgSuccessRate},
		{name: "infinite rate", rate: math.Inf(1), wantField: "successRate", wantMsg: i18n.MsgSuccessRate},
		{name: "rate checked before cap", rate: 0, cap: ptr(-5.0), wantField: "successRate", wantMsg: i18n.MsgSuccessRate},
		{name: "zero cap", rate: 25, cap: ptr(0.0), wantField: "maxAttempts", wantMsg: i18n.MsgMaxAttempts},
		{name: "negative cap", rate: 25, cap: ptr(-5.0), wantField: "maxAttempts", wantMsg: i18n.MsgMaxAttempts},
		{name: "fractional cap", rate: 25, cap: ptr(2.5), wantField: "maxAttempts", wantMsg: i18n.MsgMaxAttempts},
		{name: "infinite cap", rate: 25, cap: ptr(math.Inf(1)), wantField: "maxAttempts", wantMsg: i18n.MsgMaxAttempts},
		{name: "NaN cap", rate: 25, cap: ptr(math.NaN()), wantField: "maxAttempts", wantMsg: i18n.MsgMaxAttempts},
		{name: "cap over limit", rate: 25, cap: ptr(101.0), limit: 100, wantField: "maxAttempts", wantMsg: i18n.MsgMaxAttemptsLimit},
		{name: "cap at limit", rate: 25, cap: ptr(100.0), limit: 100, wantCap: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := executor.Validate(tt.rate, tt.cap, tt.limit)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.wantCap {
					t.Errorf("expected cap %d, got %d", tt.wantCap, got)
				}
				return
			}

			var ve *models.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *models.ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, ve.Field)
			}
			if ve.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, ve.Message)
			}
		})
	}
}

func TestSimulateCertainSuccess(t *testing.T) {
	sim := executor.NewSimulator(executor.DefaultOptions(), executor.SeededStreamsFunc(1))

	report, err := sim.Simulate(context.Background(), 100, ptr(1000.0))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	if report.TotalSuccesses != 5 || report.TotalFailures != 0 {
		t.Errorf("expected 5 successes and 0 failures, got %d/%d", report.TotalSuccesses, report.TotalFailures)
	}
	if report.AverageAttempts != 1 {
		t.Errorf("expected average 1, got %v", report.AverageAttempts)
	}
	if report.MaxAttemptsReached {
		t.Error("expected maxAttemptsReached=false")
	}
	if report.SuccessRate != 100 {
		t.Errorf("expected success rate echoed, got %v", report.SuccessRate)
	}
	if report.TheoreticalProbability != 100 {
		t.Errorf("expected theoretical 100, got %v", report.TheoreticalProbability)
	}
	if len(report.IndividualResults) != 5 {
		t.Fatalf("expected 5 individual results, got %d", len(report.IndividualResults))
	}
	for i, r := range report.IndividualResults {
		if r.Attempts != 1 || !r.Success || r.MaxAttemptsReached || r.SuccessRate != 100 {
			t.Errorf("result %d: unexpected %+v", i, r)
		}
	}
	if report.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}
}

func TestSimulateRejectsWithoutRunningEngine(t *testing.T) {
	calls := 0
	streams := func() (random.Streams, error) {
		calls++
		return random.NewPCGStreams(1), nil
	}
	sim := executor.NewSimulator(executor.DefaultOptions(), streams)

	for _, rate := range []float64{0, -1, 101} {
		report, err := sim.Simulate(context.Background(), rate, nil)
		if !models.IsValidation(err) {
			t.Errorf("rate %v: expected validation error, got %v", rate, err)
		}
		if report != nil {
			t.Errorf("rate %v: expected no report", rate)
		}
	}
	if calls != 0 {
		t.Errorf("expected the engine not to run, streams created %d times", calls)
	}
}

func TestSimulateTheoreticalUsesAverageAttempts(t *testing.T) {
	opts := executor.DefaultOptions()
	opts.TrialCount = 2
	streams := func() (random.Streams, error) {
		return random.NewScriptedStreams(func(i int) []float64 {
			return failThenSucceed(i) // 1 and 2 attempts -> average 1.5
		}), nil
	}
	sim := executor.NewSimulator(opts, streams)

	report, err := sim.Simulate(context.Background(), 50, nil)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if report.AverageAttempts != 1.5 {
		t.Fatalf("expected average 1.5, got %v", report.AverageAttempts)
	}
	want := executor.TheoreticalSuccessProbability(50, 1.5)
	if report.TheoreticalProbability != want {
		t.Errorf("expected theoretical %v, got %v", want, report.TheoreticalProbability)
	}
}

func TestSimulateStreamFailureIsInternal(t *testing.T) {
	sim := executor.NewSimulator(executor.DefaultOptions(), func() (random.Streams, error) {
		return nil, errors.New("no entropy")
	})

	_, err := sim.Simulate(context.Background(), 50, nil)
	if !errors.Is(err, models.ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if models.IsValidation(err) {
		t.Error("stream failure must not look like a validation error")
	}
}

func TestSimulateSeededIsReproducible(t *testing.T) {
	sim := executor.NewSimulator(executor.DefaultOptions(), executor.SeededStreamsFunc(12345))

	a, err := sim.Simulate(context.Background(), 10, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := sim.Simulate(context.Background(), 10, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	for i := range a.IndividualResults {
		if a.IndividualResults[i] != b.IndividualResults[i] {
			t.Fatalf("result %d differs between seeded runs", i)
		}
	}
}
