package auc

import "iter"

// Curve is a piecewise-linear curve: point i is (X[i], Y[i]).
//
// ROC curves hold the false positive rate in X and the true positive rate in
// Y. Precision-recall curves hold recall in X and precision in Y, so AUC is
// the area under precision as a function of recall for both kinds.
type Curve[F Float] struct {
	X []F
	Y []F
}

// Len returns the number of points.
func (c Curve[F]) Len() int {
	return len(c.X)
}

// Points iterates over the (x, y) coordinates in order.
func (c Curve[F]) Points() iter.Seq2[F, F] {
	return func(yield func(F, F) bool) {
		for i := range c.X {
			if !yield(c.X[i], c.Y[i]) {
				return
			}
		}
	}
}

// AUC integrates Y over X with the trapezoidal rule.
func (c Curve[F]) AUC() F {
	return Trapezoid(c.X, c.Y)
}

// Recall returns the X coordinates of a precision-recall curve.
func (c Curve[F]) Recall() []F { return c.X }

// Precision returns the Y coordinates of a precision-recall curve.
func (c Curve[F]) Precision() []F { return c.Y }

// Trapezoid returns the signed area under the curve through (xs[i], ys[i])
// using the trapezoidal rule. xs and ys must have the same non-zero length.
// The sign follows the direction of xs.
func Trapezoid[F Float](xs, ys []F) F {
	if len(xs) != len(ys) || len(xs) == 0 {
		panic("auc: trapezoid needs equal, non-empty coordinate slices")
	}

	prevX, prevY := xs[0], ys[0]
	var area F
	for i := 1; i < len(xs); i++ {
		x, y := xs[i], ys[i]
		area += (x - prevX) * (prevY + y) / 2
		prevX, prevY = x, y
	}
	return area
}
