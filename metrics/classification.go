package metrics

import (
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Accuracy は予測コードが正解コードと一致した割合を返す
func Accuracy(yTrue, yPred []int) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("Accuracy", n, len(yPred), 0)
	}
	correct := 0
	for i, v := range yTrue {
		if yPred[i] == v {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ConfusionCounts は k×k の混同行列 counts[actual][predicted] を返す
// コードが [0,k) の範囲外なら ValueError
func ConfusionCounts(yTrue, yPred []int, k int) ([][]int, error) {
	if len(yPred) != len(yTrue) {
		return nil, errors.NewDimensionError("ConfusionCounts", len(yTrue), len(yPred), 0)
	}
	if k <= 0 {
		return nil, errors.NewValidationError("k", "must be positive", k)
	}
	counts := make([][]int, k)
	for i := range counts {
		counts[i] = make([]int, k)
	}
	for i, actual := range yTrue {
		predicted := yPred[i]
		if actual < 0 || actual >= k {
			return nil, errors.NewValueError("ConfusionCounts", "the label is out of range")
		}
		if predicted < 0 || predicted >= k {
			return nil, errors.NewValueError("ConfusionCounts", "the prediction is out of range")
		}
		counts[actual][predicted]++
	}
	return counts, nil
}
