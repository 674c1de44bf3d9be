package executor

import "github.com/spachava753/howmanytries/internal/models"

// aggregateOutcomes folds trial outcomes into a BatchResult.
func aggregateOutcomes(params models.SimulationParameters, outcomes []models.TrialOutcome) *models.BatchResult {
	br := &models.BatchResult{
		Outcomes:                  outcomes,
		SuccessProbabilityPercent: params.SuccessProbabilityPercent,
	}

	var attemptSum int64
	for _, o := range outcomes {
		if o.Succeeded {
			br.SuccessCount++
			attemptSum += int64(o.AttemptsUsed)
		} else {
			br.FailureCount++
		}
		if o.CapReached {
			br.AnyCapReached = true
		}
	}

	if br.SuccessCount == 0 {
		br.AverageAttempts = float64(params.AttemptCap)
	} else {
		br.AverageAttempts = roundMean(attemptSum, int64(br.SuccessCount))
	}

	return br
}

// roundMean returns sum/count rounded half away from zero to two decimals.
// The rounding is done on the exact rational value, so 1401/200 (7.005) gives
// 7.01 regardless of how 7.005 is represented in binary. sum and count must be
// non-negative and count positive.
func roundMean(sum, count int64) float64 {
	hundredths := (sum*200 + count) / (2 * count)
	return float64(hundredths) / 100
}
