package auc

import "iter"

// prAccumulator tracks the running counts of a precision-recall sweep and
// emits curve points.
type prAccumulator[F Float] struct {
	positives F // total positives in the batch
	tp        F
	seen      F
	recall    []F
	precision []F
}

func newPRAccumulator[F Float](positives int, capacity int) *prAccumulator[F] {
	return &prAccumulator[F]{
		positives: F(positives),
		recall:    make([]F, 0, capacity),
		precision: make([]F, 0, capacity),
	}
}

// emit records the point for everything consumed so far. Precision is 1
// before anything has been consumed.
func (a *prAccumulator[F]) emit() {
	a.recall = append(a.recall, a.tp/a.positives)
	if a.seen == 0 {
		a.precision = append(a.precision, 1)
	} else {
		a.precision = append(a.precision, a.tp/a.seen)
	}
}

func (a *prAccumulator[F]) add(tp, seen int) {
	a.tp += F(tp)
	a.seen += F(seen)
}

func (a *prAccumulator[F]) curve() Curve[F] {
	return Curve[F]{X: a.recall, Y: a.precision}
}

func countPositives[F Float](samples []Sample[F]) int {
	n := 0
	for _, s := range samples {
		if s.Label {
			n++
		}
	}
	return n
}

// PRMut returns the precision-recall curve of samples, sorting them in place
// by descending score. X holds recall, rising from 0 to 1; Y holds precision,
// starting at 1. There is one point per distinct score plus the two ends.
func PRMut[F Float](samples []Sample[F]) (Curve[F], bool) {
	if !valid(samples) {
		return Curve[F]{}, false
	}

	sortDescending(samples)
	acc := newPRAccumulator[F](countPositives(samples), len(samples)+1)
	for i, s := range samples {
		if i == 0 || s.Score != samples[i-1].Score {
			acc.emit()
		}
		if s.Label {
			acc.add(1, 1)
		} else {
			acc.add(0, 1)
		}
	}
	acc.emit()
	return acc.curve(), true
}

// PR is PRMut over items mapped through fn.
func PR[T any, F Float](items iter.Seq[T], fn func(T) (bool, F)) (Curve[F], bool) {
	return PRMut(Collect(items, fn))
}

// PRAUCMut returns the area under the precision-recall curve of samples,
// sorting them in place.
func PRAUCMut[F Float](samples []Sample[F]) (F, bool) {
	c, ok := PRMut(samples)
	if !ok {
		return 0, false
	}
	return Trapezoid(c.Recall(), c.Precision()), true
}

// PRAUC is PRAUCMut over items mapped through fn.
func PRAUC[T any, F Float](items iter.Seq[T], fn func(T) (bool, F)) (F, bool) {
	return PRAUCMut(Collect(items, fn))
}
