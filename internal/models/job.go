package models

import "time"

const (
	// DefaultAttemptCap is used when the caller omits the attempt cap.
	DefaultAttemptCap = 1000

	// DefaultTrialCount is the number of trials in one batch.
	DefaultTrialCount = 5
)

// SimulationParameters are the validated inputs of one batch.
type SimulationParameters struct {
	SuccessProbabilityPercent float64 `yaml:"success_rate" json:"successRate"`
	AttemptCap                int     `yaml:"max_attempts" json:"maxAttempts"`
	TrialCount                int     `yaml:"trials" json:"trials"`
}

// BatchResult contains aggregate statistics across all trials of a batch.
type BatchResult struct {
	Outcomes                  []TrialOutcome `json:"outcomes"`
	SuccessCount              int            `json:"success_count"`
	FailureCount              int            `json:"failure_count"`
	AverageAttempts           float64        `json:"average_attempts"`
	AnyCapReached             bool           `json:"any_cap_reached"`
	SuccessProbabilityPercent float64        `json:"success_rate"`
}

// SimulationReport is the serialized answer to a simulate call.
type SimulationReport struct {
	AverageAttempts        float64       `json:"averageAttempts"`
	TotalSuccesses         int           `json:"totalSuccesses"`
	TotalFailures          int           `json:"totalFailures"`
	SuccessRate            float64       `json:"successRate"`
	MaxAttemptsReached     bool          `json:"maxAttemptsReached"`
	IndividualResults      []TrialResult `json:"individualResults"`
	TheoreticalProbability float64       `json:"theoreticalProbability"`
	ExecutionTimeMs        int64         `json:"executionTime"`
	Timestamp              time.Time     `json:"timestamp"`
}

// NewSimulationReport flattens a batch into the report shape.
func NewSimulationReport(b *BatchResult, theoretical float64, elapsed time.Duration, now time.Time) *SimulationReport {
	results := make([]TrialResult, 0, len(b.Outcomes))
	for _, o := range b.Outcomes {
		results = append(results, TrialResult{
			Attempts:           o.AttemptsUsed,
			Success:            o.Succeeded,
			MaxAttemptsReached: o.CapReached,
			SuccessRate:        b.SuccessProbabilityPercent,
		})
	}

	return &SimulationReport{
		AverageAttempts:        b.AverageAttempts,
		TotalSuccesses:         b.SuccessCount,
		TotalFailures:          b.FailureCount,
		SuccessRate:            b.SuccessProbabilityPercent,
		MaxAttemptsReached:     b.AnyCapReached,
		IndividualResults:      results,
		TheoreticalProbability: theoretical,
		ExecutionTimeMs:        elapsed.Milliseconds(),
		Timestamp:              now.UTC(),
	}
}
