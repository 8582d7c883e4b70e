// Package auc computes ROC and precision-recall curves, and the areas under
// them, for binary classifiers.
//
// # Quick Start
//
//	samples := []auc.Sample[float64]{
//	    {Label: false, Score: 0.1},
//	    {Label: true, Score: 0.8},
//	    {Label: false, Score: 0.8},
//	}
//	rocAUC, ok := auc.ROCAUCMut(samples)
//	if !ok {
//	    log.Fatal("ROC AUC undefined for this batch")
//	}
//	fmt.Printf("ROC AUC: %.4f\n", rocAUC)
//
// # Undefined Results
//
// Every curve and AUC function reports "no result" through its boolean return
// when the batch is empty, contains only one class, or holds a NaN or infinite
// score. Validate explains which of these applies.
//
// # Mutating Variants
//
// Functions ending in Mut sort or otherwise reorder the batch they are given.
// Copy the batch first if its order matters. The adapter forms (ROC, PR,
// PRSparse and their AUC counterparts) build a fresh batch from an iterator
// and never touch caller data.
//
// # Sparse Positives
//
// PRMutSparse and PRAUCMutSparse avoid sorting the whole batch. They cost
// O(n log P + P) where P is the number of distinct positive scores, which pays
// off when positives are rare. Their AUC matches PRAUCMut.
//
// # Thread Safety
//
// All functions are synchronous and keep no shared state. Concurrent calls are
// safe as long as they operate on disjoint batches.
package auc
