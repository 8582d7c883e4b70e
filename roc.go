package auc

import (
	"cmp"
	"iter"
	"slices"
)

// sortDescending orders samples by score, highest first. The relative order of
// equal scores is unspecified.
func sortDescending[F Float](samples []Sample[F]) {
	slices.SortFunc(samples, func(a, b Sample[F]) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// rocCounts sweeps a descending batch and returns the cumulative false and
// true positive counts at each tie-group boundary, plus the totals.
func rocCounts[F Float](samples []Sample[F]) (fps, tps []F) {
	var fp, tp F
	for i, s := range samples {
		if i == 0 || s.Score != samples[i-1].Score {
			fps = append(fps, fp)
			tps = append(tps, tp)
		}
		if s.Label {
			tp++
		} else {
			fp++
		}
	}
	fps = append(fps, fp)
	tps = append(tps, tp)
	return fps, tps
}

// ROCMut returns the ROC curve of samples, sorting them in place by
// descending score. The curve runs from (0, 0) to (1, 1) with one point per
// distinct score in between.
func ROCMut[F Float](samples []Sample[F]) (Curve[F], bool) {
	if !valid(samples) {
		return Curve[F]{}, false
	}

	sortDescending(samples)
	fps, tps := rocCounts(samples)

	fpMax, tpMax := fps[len(fps)-1], tps[len(tps)-1]
	for i := range fps {
		fps[i] /= fpMax
		tps[i] /= tpMax
	}
	return Curve[F]{X: fps, Y: tps}, true
}

// ROC is ROCMut over items mapped through fn.
func ROC[T any, F Float](items iter.Seq[T], fn func(T) (bool, F)) (Curve[F], bool) {
	return ROCMut(Collect(items, fn))
}

// ROCAUCMut returns the area under the ROC curve of samples, sorting them in
// place.
func ROCAUCMut[F Float](samples []Sample[F]) (F, bool) {
	c, ok := ROCMut(samples)
	if !ok {
		return 0, false
	}
	return c.AUC(), true
}

// ROCAUC is ROCAUCMut over items mapped through fn.
func ROCAUC[T any, F Float](items iter.Seq[T], fn func(T) (bool, F)) (F, bool) {
	return ROCAUCMut(Collect(items, fn))
}
