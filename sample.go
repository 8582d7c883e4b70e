package auc

import (
	"iter"
	"math"
)

// Float is the set of score and coordinate types the engine works with.
type Float interface {
	~float32 | ~float64
}

// Sample is one classifier output paired with its ground truth.
type Sample[F Float] struct {
	Label bool // true for the positive class
	Score F
}

// Collect materializes items into a batch using fn, preserving iteration order.
func Collect[T any, F Float](items iter.Seq[T], fn func(T) (bool, F)) []Sample[F] {
	var samples []Sample[F]
	for item := range items {
		label, score := fn(item)
		samples = append(samples, Sample[F]{Label: label, Score: score})
	}
	return samples
}

// Validate reports why no metric can be computed for samples, or nil when the
// batch is usable.
func Validate[F Float](samples []Sample[F]) error {
	if len(samples) == 0 {
		return ErrEmpty
	}

	var pos, neg bool
	for _, s := range samples {
		if !finite(s.Score) {
			return ErrNonFinite
		}
		if s.Label {
			pos = true
		} else {
			neg = true
		}
	}
	if !pos || !neg {
		return ErrSingleClass
	}
	return nil
}

func valid[F Float](samples []Sample[F]) bool {
	return Validate(samples) == nil
}

func finite[F Float](x F) bool {
	f := float64(x)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
