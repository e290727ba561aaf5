package evaluation

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlsys/core/model"
	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/metrics"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// MeasureAccuracy predicts every row of features and compares the result
// with the single label column.
//
// A continuous label yields the RMSE. A nominal label yields the fraction
// of exact matches and, when withConfusion is set, a k×k confusion matrix
// indexed [actual][predicted]. Every row is scored: a missing label is a
// ValueError for both label kinds.
func MeasureAccuracy(p model.Predictor, features, labels *relation.Matrix, withConfusion bool) (Score, *relation.Matrix, error) {
	const op = "evaluation.MeasureAccuracy"

	if features.Rows() != labels.Rows() {
		return Score{}, nil, errors.NewDimensionError(op, features.Rows(), labels.Rows(), 0)
	}
	if labels.Cols() != 1 {
		return Score{}, nil, errors.NewDimensionError(op, 1, labels.Cols(), 1)
	}
	if labels.Rows() == 0 {
		return Score{}, nil, errors.NewValueError(op, "expected at least one row")
	}

	k := labels.ValueCount(0)
	var (
		truth []float64
		preds []float64
	)
	for i := 0; i < labels.Rows(); i++ {
		target := labels.At(i, 0)
		if k == 0 && target == relation.Missing {
			return Score{}, nil, errors.NewValueError(op, "the label is missing")
		}
		if k > 0 && (target < 0 || target >= float64(k)) {
			return Score{}, nil, errors.NewValueError(op, "the label is out of range")
		}
		pred, err := p.Predict(features.Row(i))
		if err != nil {
			return Score{}, nil, errors.Wrapf(err, "predict row %d", i)
		}
		if len(pred) != 1 {
			return Score{}, nil, errors.NewDimensionError(op, 1, len(pred), 1)
		}
		truth = append(truth, target)
		preds = append(preds, pred[0])
	}
	if k == 0 {
		rmse, err := metrics.RMSE(mat.NewVecDense(len(truth), truth), mat.NewVecDense(len(preds), preds))
		if err != nil {
			return Score{}, nil, err
		}
		return Score{Metric: MetricRMSE, Value: rmse}, nil, nil
	}

	actual := make([]int, len(truth))
	predicted := make([]int, len(preds))
	for i := range truth {
		actual[i] = int(truth[i])
		predicted[i] = codeOf(preds[i])
	}
	acc, err := metrics.Accuracy(actual, predicted)
	if err != nil {
		return Score{}, nil, err
	}
	score := Score{Metric: MetricAccuracy, Value: acc}
	if !withConfusion {
		return score, nil, nil
	}

	counts, err := metrics.ConfusionCounts(actual, predicted, k)
	if err != nil {
		return Score{}, nil, err
	}
	return score, confusionMatrix(labels, counts), nil
}

// codeOf maps a nominal prediction to its code; values that are not a
// whole number map to -1, which never matches a label.
func codeOf(v float64) int {
	if v == relation.Missing || math.IsNaN(v) || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return -1
	}
	return int(v)
}

func confusionMatrix(labels *relation.Matrix, counts [][]int) *relation.Matrix {
	k := len(counts)
	cm := relation.NewMatrix(k, k)
	for j := 0; j < k; j++ {
		name, _ := labels.ValueName(0, j)
		cm.SetAttributeName(j, name)
	}
	for a, row := range counts {
		for p, n := range row {
			cm.Set(a, p, float64(n))
		}
	}
	return cm
}
