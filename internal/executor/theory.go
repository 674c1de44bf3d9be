package executor

import "math"

// TheoreticalSuccessProbability returns the probability, in percent, of at
// least one success in attempts independent draws with per-draw success
// probability successRate percent. attempts need not be whole: callers pass a
// batch's empirical average.
func TheoreticalSuccessProbability(successRate, attempts float64) float64 {
	p := successRate / 100
	return (1 - math.Pow(1-p, attempts)) * 100
}
