package bench

import (
	"sort"

	auc "github.com/jamesainslie/go-auc"
)

// SweepResult holds metrics for one threshold value.
type SweepResult struct {
	Threshold float64
	Metrics   Metrics
}

// SweepThresholds generates threshold values from min to max with given step.
func SweepThresholds(min, max, step float64) []float64 {
	if step <= 0 {
		return nil
	}
	var thresholds []float64
	for i := 0; ; i++ {
		t := min + float64(i)*step
		if t >= max {
			break
		}
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// Sweep evaluates samples at each threshold and returns results sorted by
// weighted score, best first. Ties keep threshold order.
func Sweep(samples []auc.Sample[float64], cfg Config, thresholds []float64) []SweepResult {
	idx := newScoreIndex(samples)

	results := make([]SweepResult, 0, len(thresholds))
	for _, threshold := range thresholds {
		results = append(results, SweepResult{
			Threshold: threshold,
			Metrics:   idx.at(threshold, cfg),
		})
	}

	// Sort by weighted score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Metrics.WeightedScore > results[j].Metrics.WeightedScore
	})

	return results
}

// Best returns the threshold with the highest F1 among thresholds.
func Best(samples []auc.Sample[float64], cfg Config, thresholds []float64) (SweepResult, bool) {
	var best SweepResult
	found := false
	for _, r := range Sweep(samples, cfg, thresholds) {
		if !found || r.Metrics.F1 > best.Metrics.F1 {
			best, found = r, true
		}
	}
	return best, found
}
