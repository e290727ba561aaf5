// Package baseline は特徴量を無視して各ラベル列の代表値を予測する学習器を提供します。
//
// 連続値のラベル列には平均を、カテゴリ列には最頻値（辞書コード）を予測します。
// 実際の学習器が上回るべき精度の下限として使います。
package baseline

import (
	"math"

	"github.com/YuminosukeSato/mlsys/core/model"
	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
	"github.com/YuminosukeSato/mlsys/pkg/log"
)

// Learner は平均値・最頻値を予測するベースライン学習器
type Learner struct {
	model.BaseEstimator

	labels []float64
	logger log.Logger
}

var (
	_ model.Learner = (*Learner)(nil)
	_ model.Named   = (*Learner)(nil)
)

// New は未学習のベースライン学習器を作成します。
func New() *Learner {
	return &Learner{logger: log.GetLoggerWithName("baseline")}
}

// Name implements model.Named.
func (l *Learner) Name() string { return "baseline" }

// Train はラベル列ごとに平均値または最頻値を計算します。
//
// 行が無い（またはすべて欠損の）列は、連続値なら NaN、カテゴリなら
// relation.Missing を予測し、UndefinedMetricWarning を発生させます。
//
// パラメータ:
//   - features: 特徴量行列（行数の確認にのみ使う）
//   - labels: ラベル行列
//
// 戻り値:
//   - error: 行数が一致しない場合
func (l *Learner) Train(features, labels *relation.Matrix) error {
	if features.Rows() != labels.Rows() {
		return errors.NewDimensionError("baseline.Train", features.Rows(), labels.Rows(), 0)
	}

	l.labels = make([]float64, labels.Cols())
	for j := range l.labels {
		if labels.IsContinuous(j) {
			mean := labels.ColumnMean(j)
			if math.IsNaN(mean) {
				errors.Warn(errors.NewUndefinedMetricWarning("mean", "label column '"+labels.AttributeName(j)+"' has no values", mean))
			}
			l.labels[j] = mean
		} else {
			mode := labels.MostCommonValue(j)
			if mode == relation.Missing {
				errors.Warn(errors.NewUndefinedMetricWarning("mode", "label column '"+labels.AttributeName(j)+"' has no values", mode))
			}
			l.labels[j] = mode
		}
	}
	l.SetFitted(features.Cols(), labels.Cols())
	l.logger.Debug("Baseline trained",
		log.OperationKey, log.OperationTrain,
		log.SamplesKey, labels.Rows(),
		"labels", l.labels,
	)
	return nil
}

// Predict は特徴量を無視して学習済みの代表値を返します。
func (l *Learner) Predict(_ []float64) ([]float64, error) {
	if err := l.RequireFitted("baseline", "Predict"); err != nil {
		return nil, err
	}
	out := make([]float64, len(l.labels))
	copy(out, l.labels)
	return out, nil
}
