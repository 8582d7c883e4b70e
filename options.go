package auc

import (
	"log/slog"
)

// Algorithm selects how an Evaluator builds precision-recall curves.
type Algorithm int

const (
	// Auto picks Sparse when positives are rare and Dense otherwise.
	Auto Algorithm = iota
	// Dense sorts the whole batch.
	Dense
	// Sparse sweeps only the distinct positive scores.
	Sparse
)

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	switch a {
	case Auto:
		return "auto"
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	algorithm   Algorithm
	sparseRatio float64
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		algorithm:   Auto,
		sparseRatio: 0.01,
		logger:      slog.Default(),
	}
}

// WithAlgorithm sets the precision-recall algorithm (default: Auto).
func WithAlgorithm(a Algorithm) Option {
	return func(c *config) {
		if a >= Auto && a <= Sparse {
			c.algorithm = a
		}
	}
}

// WithSparseRatio sets the largest positive fraction for which Auto picks the
// sparse algorithm (default: 0.01).
func WithSparseRatio(r float64) Option {
	return func(c *config) {
		if r >= 0 && r <= 1 {
			c.sparseRatio = r
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
