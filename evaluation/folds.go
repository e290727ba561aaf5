package evaluation

import (
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Fold is the half-open row range [Lo, Hi) held out as a test set.
type Fold struct {
	Index int
	Lo    int
	Hi    int
}

// Size returns the number of rows in the fold.
func (f Fold) Size() int { return f.Hi - f.Lo }

// FoldBounds splits n rows into k contiguous folds with boundaries at
// i*n/k, so later folds take the remainder rows.
func FoldBounds(n, k int) ([]Fold, error) {
	if k <= 0 {
		return nil, errors.NewValidationError("folds", "must be at least 1", k)
	}
	if n < 0 {
		return nil, errors.NewValidationError("rows", "must be non-negative", n)
	}
	folds := make([]Fold, k)
	for i := range folds {
		folds[i] = Fold{Index: i, Lo: i * n / k, Hi: (i + 1) * n / k}
	}
	return folds, nil
}
