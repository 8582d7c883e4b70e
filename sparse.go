package auc

import (
	"iter"
	"slices"
)

// bucket holds the counts of one slot of the sparse sweep. Interval slots
// only ever receive negatives.
type bucket struct {
	pos int
	neg int
}

// lowerBound returns the smallest index i such that sorted[i] >= v, or
// len(sorted) when every element is smaller. For a value present in sorted
// it is the leftmost matching index.
func lowerBound[F Float](sorted []F, v F) int {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if sorted[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// positiveThresholds returns the distinct scores of positive samples in
// ascending order.
func positiveThresholds[F Float](samples []Sample[F]) []F {
	var scores []F
	for _, s := range samples {
		if s.Label {
			scores = append(scores, s.Score)
		}
	}
	slices.Sort(scores)
	return slices.Compact(scores)
}

// sparseBuckets classifies every sample against the positive thresholds u.
// Slot 2i counts negatives strictly between u[i-1] and u[i] (below u[0] for
// i = 0, above the last threshold for i = len(u)); slot 2i+1 counts the
// samples, of either label, scored exactly u[i].
func sparseBuckets[F Float](samples []Sample[F], u []F) []bucket {
	buckets := make([]bucket, 2*len(u)+1)
	for _, s := range samples {
		i := lowerBound(u, s.Score)
		if i < len(u) && u[i] == s.Score {
			if s.Label {
				buckets[2*i+1].pos++
			} else {
				buckets[2*i+1].neg++
			}
			continue
		}
		if s.Label {
			panic("auc: positive score missing from thresholds")
		}
		buckets[2*i].neg++
	}
	return buckets
}

// PRMutSparse returns a precision-recall curve of samples without sorting the
// whole batch. Points are produced only where the running counts can change
// recall, so the curve may hold fewer points than PRMut's, but its area is
// the same. The batch is not reordered; the Mut suffix keeps the contract of
// PRMut so the two are interchangeable.
func PRMutSparse[F Float](samples []Sample[F]) (Curve[F], bool) {
	if !valid(samples) {
		return Curve[F]{}, false
	}

	u := positiveThresholds(samples)
	if len(u) == 0 {
		panic("auc: no positive thresholds in a validated batch")
	}
	buckets := sparseBuckets(samples, u)

	positives := 0
	for i := 1; i < len(buckets); i += 2 {
		positives += buckets[i].pos
	}

	acc := newPRAccumulator[F](positives, len(buckets)+1)
	for i := len(buckets) - 1; i >= 0; i-- {
		b := buckets[i]
		if b.pos+b.neg == 0 {
			continue
		}
		acc.emit()
		acc.add(b.pos, b.pos+b.neg)
	}
	acc.emit()
	return acc.curve(), true
}

// PRSparse is PRMutSparse over items mapped through fn.
func PRSparse[T any, F Float](items iter.Seq[T], fn func(T) (bool, F)) (Curve[F], bool) {
	return PRMutSparse(Collect(items, fn))
}

// PRAUCMutSparse returns the area under the precision-recall curve using the
// sparse sweep. It equals PRAUCMut for every batch.
func PRAUCMutSparse[F Float](samples []Sample[F]) (F, bool) {
	c, ok := PRMutSparse(samples)
	if !ok {
		return 0, false
	}
	return Trapezoid(c.Recall(), c.Precision()), true
}

// PRAUCSparse is PRAUCMutSparse over items mapped through fn.
func PRAUCSparse[T any, F Float](items iter.Seq[T], fn func(T) (bool, F)) (F, bool) {
	return PRAUCMutSparse(Collect(items, fn))
}
