package auc

import (
	"errors"
	"fmt"
)

// ErrUndefined is matched by every validation failure: the metric has no
// value for the batch.
var ErrUndefined = errors.New("auc: metric undefined")

// Sentinel errors returned by Validate.
var (
	// ErrEmpty indicates the batch has no samples.
	ErrEmpty = fmt.Errorf("%w: empty batch", ErrUndefined)

	// ErrSingleClass indicates only positives or only negatives are present.
	ErrSingleClass = fmt.Errorf("%w: both classes must be present", ErrUndefined)

	// ErrNonFinite indicates a NaN or infinite score.
	ErrNonFinite = fmt.Errorf("%w: non-finite score", ErrUndefined)
)
