// Package bench evaluates classifier scores at fixed thresholds and compares
// the dense and sparse precision-recall algorithms.
package bench

import (
	"cmp"
	"slices"

	auc "github.com/jamesainslie/go-auc"
)

// Config holds evaluation parameters.
type Config struct {
	Threshold       float64 // scores >= Threshold are predicted positive
	PrecisionWeight float64
	RecallWeight    float64
}

// DefaultConfig returns default evaluation configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:       0.5,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
	}
}

// Metrics holds evaluation results.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int
	Precision      float64
	Recall         float64
	F1             float64
	WeightedScore  float64
}

// newMetrics derives the rates from confusion counts.
func newMetrics(tp, fp, fn, tn int, cfg Config) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
		TrueNegatives:  tn,
	}

	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	wp := cfg.PrecisionWeight
	wr := cfg.RecallWeight
	if wp+wr > 0 {
		m.WeightedScore = (wp*m.Precision + wr*m.Recall) / (wp + wr)
	}
	return m
}

// Evaluate classifies samples at cfg.Threshold and scores the result.
func Evaluate(samples []auc.Sample[float64], cfg Config) Metrics {
	var tp, fp, fn, tn int
	for _, s := range samples {
		predicted := s.Score >= cfg.Threshold
		switch {
		case predicted && s.Label:
			tp++
		case predicted:
			fp++
		case s.Label:
			fn++
		default:
			tn++
		}
	}
	return newMetrics(tp, fp, fn, tn, cfg)
}

// scoreIndex answers confusion-count queries for many thresholds after one
// sort of the batch.
type scoreIndex struct {
	scores    []float64
	posBefore []int // positives among scores[:i]
	positives int
}

func newScoreIndex(samples []auc.Sample[float64]) *scoreIndex {
	sorted := slices.Clone(samples)
	slices.SortFunc(sorted, func(a, b auc.Sample[float64]) int {
		return cmp.Compare(a.Score, b.Score)
	})

	idx := &scoreIndex{
		scores:    make([]float64, len(sorted)),
		posBefore: make([]int, len(sorted)+1),
	}
	for i, s := range sorted {
		idx.scores[i] = s.Score
		idx.posBefore[i+1] = idx.posBefore[i]
		if s.Label {
			idx.posBefore[i+1]++
		}
	}
	idx.positives = idx.posBefore[len(sorted)]
	return idx
}

// at returns the metrics for predicting scores >= threshold as positive.
func (x *scoreIndex) at(threshold float64, cfg Config) Metrics {
	i, _ := slices.BinarySearch(x.scores, threshold)
	n := len(x.scores)
	negatives := n - x.positives

	tp := x.positives - x.posBefore[i]
	fp := (n - i) - tp
	fn := x.positives - tp
	tn := negatives - fp
	return newMetrics(tp, fp, fn, tn, cfg)
}
