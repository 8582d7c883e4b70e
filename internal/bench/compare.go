package bench

import (
	"slices"
	"time"

	auc "github.com/jamesainslie/go-auc"
)

// Comparison reports how the dense and sparse precision-recall algorithms
// fare on one batch.
type Comparison struct {
	Samples   int
	Positives int
	DenseAUC  float64
	SparseAUC float64
	// Dense and Sparse are the fastest of the timed runs.
	Dense  time.Duration
	Sparse time.Duration
}

// Speedup returns how many times faster the sparse algorithm ran.
func (c Comparison) Speedup() float64 {
	if c.Sparse <= 0 {
		return 0
	}
	return float64(c.Dense) / float64(c.Sparse)
}

// Compare times both algorithms over runs fresh copies of samples. It reports
// false when the batch has no defined precision-recall AUC.
func Compare(samples []auc.Sample[float64], runs int) (Comparison, bool) {
	if err := auc.Validate(samples); err != nil {
		return Comparison{}, false
	}
	if runs < 1 {
		runs = 1
	}

	c := Comparison{Samples: len(samples)}
	for _, s := range samples {
		if s.Label {
			c.Positives++
		}
	}

	work := make([]auc.Sample[float64], len(samples))
	c.Dense, c.DenseAUC = fastest(runs, func() float64 {
		copy(work, samples)
		v, _ := auc.PRAUCMut(work)
		return v
	})
	c.Sparse, c.SparseAUC = fastest(runs, func() float64 {
		copy(work, samples)
		v, _ := auc.PRAUCMutSparse(work)
		return v
	})
	return c, true
}

// fastest runs fn runs times and returns the shortest duration and the last
// value produced.
func fastest(runs int, fn func() float64) (time.Duration, float64) {
	durations := make([]time.Duration, runs)
	var v float64
	for i := range durations {
		start := time.Now()
		v = fn()
		durations[i] = time.Since(start)
	}
	return slices.Min(durations), v
}
