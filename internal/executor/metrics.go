package executor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/spachava753/howmanytries/internal/models"
)

var (
	// batchesTotal counts finished batches by result
	batchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "howmanytries_batches_total",
		Help: "Total simulation batches by result",
	}, []string{"result"})

	// trialsTotal counts trials by outcome
	trialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "howmanytries_trials_total",
		Help: "Total trials by outcome",
	}, []string{"outcome"})

	// trialAttempts tracks attempts used per trial
	trialAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "howmanytries_trial_attempts",
		Help:    "Attempts used per trial",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~260k
	})

	// batchDuration tracks batch latency
	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "howmanytries_batch_duration_seconds",
		Help:    "Batch duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
)

func recordBatch(result *models.BatchResult, elapsed time.Duration) {
	batchesTotal.WithLabelValues("ok").Inc()
	batchDuration.Observe(elapsed.Seconds())
	for _, o := range result.Outcomes {
		switch {
		case o.Succeeded:
			trialsTotal.WithLabelValues("success").Inc()
		case o.CapReached:
			trialsTotal.WithLabelValues("cap_reached").Inc()
		}
		trialAttempts.Observe(float64(o.AttemptsUsed))
	}
}
