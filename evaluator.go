package auc

import (
	"context"
	"log/slog"
	"slices"
)

// Report summarizes the curves of one batch.
type Report struct {
	Samples   int
	Positives int
	Negatives int
	ROCAUC    float64
	PRAUC     float64
	// Algorithm is the precision-recall algorithm that produced PRAUC.
	Algorithm Algorithm
}

// Evaluator computes ROC and precision-recall AUCs for batches of float64
// scores. It is safe for concurrent use.
type Evaluator struct {
	algorithm   Algorithm
	sparseRatio float64
	logger      *slog.Logger
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Evaluator{
		algorithm:   cfg.algorithm,
		sparseRatio: cfg.sparseRatio,
		logger:      cfg.logger,
	}
}

// Evaluate returns the report for samples. The caller's slice is left in its
// original order. It fails with an error matching ErrUndefined when the batch
// cannot be scored.
func (e *Evaluator) Evaluate(ctx context.Context, samples []Sample[float64]) (Report, error) {
	if err := Validate(samples); err != nil {
		e.logger.DebugContext(ctx, "metric undefined", slog.Int("samples", len(samples)), slog.Any("error", err))
		return Report{}, err
	}

	positives := countPositives(samples)
	r := Report{
		Samples:   len(samples),
		Positives: positives,
		Negatives: len(samples) - positives,
		Algorithm: e.choose(len(samples), positives),
	}

	// The sparse sweep leaves the batch alone; only the sorting paths need a copy.
	batch := slices.Clone(samples)

	var ok bool
	if r.Algorithm == Sparse {
		r.PRAUC, ok = PRAUCMutSparse(samples)
	} else {
		r.PRAUC, ok = PRAUCMut(batch)
	}
	if !ok {
		panic("auc: validated batch produced no precision-recall curve")
	}

	if r.ROCAUC, ok = ROCAUCMut(batch); !ok {
		panic("auc: validated batch produced no ROC curve")
	}

	e.logger.DebugContext(ctx, "evaluated batch",
		slog.Int("samples", r.Samples),
		slog.Int("positives", r.Positives),
		slog.String("algorithm", r.Algorithm.String()),
		slog.Float64("roc_auc", r.ROCAUC),
		slog.Float64("pr_auc", r.PRAUC),
	)
	return r, nil
}

// choose resolves Auto against the class balance of a batch.
func (e *Evaluator) choose(n, positives int) Algorithm {
	if e.algorithm != Auto {
		return e.algorithm
	}
	if float64(positives) <= e.sparseRatio*float64(n) {
		return Sparse
	}
	return Dense
}
