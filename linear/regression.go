// Package linear は最小二乗法による線形回帰の学習器を提供します。
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlsys/core/model"
	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/metrics"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
	"github.com/YuminosukeSato/mlsys/pkg/log"
)

// Learner は線形回帰モデル
// カテゴリ列の特徴量は辞書コードをそのまま数値として使う
type Learner struct {
	model.BaseEstimator // BaseEstimatorを埋め込み

	Weights   *mat.VecDense // 重み（係数）
	Intercept float64       // 切片

	fitIntercept bool
	l2           float64
	logger       log.Logger
}

var (
	_ model.Learner = (*Learner)(nil)
	_ model.Named   = (*Learner)(nil)
)

// New は新しい線形回帰モデルを作成する
//
// 使用例:
//
//	lr := linear.New(linear.WithL2(0.1))
//	err := lr.Train(features, labels)
func New(opts ...Option) *Learner {
	l := &Learner{
		fitIntercept: true,
		logger:       log.GetLoggerWithName("linear"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name implements model.Named.
func (l *Learner) Name() string { return "linear" }

// Train はモデルを訓練データで学習させる
// 正規方程式 w = (X^T * X + αI)^(-1) * X^T * y を使用
func (l *Learner) Train(features, labels *relation.Matrix) error {
	const op = "linear.Train"

	r, c := features.Dims()
	if r == 0 {
		return errors.NewModelError(op, "", errors.ErrEmptyData)
	}
	if labels.Rows() != r {
		return errors.NewDimensionError(op, r, labels.Rows(), 0)
	}
	if labels.Cols() != 1 || !labels.IsContinuous(0) {
		return errors.NewValueError(op, "labels must be a single continuous column")
	}
	if l.l2 < 0 {
		return errors.NewValidationError("l2", "must be non-negative", l.l2)
	}

	offset := 0
	if l.fitIntercept {
		offset = 1
	}

	// 切片項のために X に 1 の列を追加
	X := mat.NewDense(r, c+offset, nil)
	y := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		if l.fitIntercept {
			X.Set(i, 0, 1.0)
		}
		for j := 0; j < c; j++ {
			v := features.At(i, j)
			if v == relation.Missing {
				return errors.NewValueError(op, "missing feature value in row")
			}
			X.Set(i, j+offset, v)
		}
		v := labels.At(i, 0)
		if v == relation.Missing {
			return errors.NewValueError(op, "missing label value in row")
		}
		y.SetVec(i, v)
	}

	var XTX mat.Dense
	XTX.Mul(X.T(), X)
	for j := offset; j < c+offset; j++ {
		XTX.Set(j, j, XTX.At(j, j)+l.l2)
	}

	// 逆行列を計算
	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return errors.NewModelError(op, "", errors.ErrSingularMatrix)
	}

	var XTy mat.VecDense
	XTy.MulVec(X.T(), y)

	weights := mat.NewVecDense(c+offset, nil)
	weights.MulVec(&XTXInv, &XTy)

	// 切片と重みを分離
	l.Intercept = 0
	if l.fitIntercept {
		l.Intercept = weights.AtVec(0)
	}
	l.Weights = mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		l.Weights.SetVec(j, weights.AtVec(j+offset))
	}

	l.SetFitted(c, 1)
	l.logger.Debug("Linear model trained",
		log.OperationKey, log.OperationTrain,
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)
	return nil
}

// Predict は1行分の特徴量に対する予測を行う
func (l *Learner) Predict(features []float64) ([]float64, error) {
	if err := l.RequireFitted("linear", "Predict"); err != nil {
		return nil, err
	}
	if len(features) != l.Weights.Len() {
		return nil, errors.NewDimensionError("linear.Predict", l.Weights.Len(), len(features), 1)
	}

	// 予測: y = x · weights + intercept
	x := mat.NewVecDense(len(features), features)
	return []float64{mat.Dot(x, l.Weights) + l.Intercept}, nil
}

// GetWeights は学習された重み（係数）を返す
func (l *Learner) GetWeights() []float64 {
	if l.Weights == nil {
		return nil
	}
	return mat.Col(nil, 0, l.Weights)
}

// Score はモデルの決定係数（R²）を計算する
func (l *Learner) Score(features, labels *relation.Matrix) (float64, error) {
	if err := l.RequireFitted("linear", "Score"); err != nil {
		return 0, err
	}
	r := features.Rows()
	if r == 0 || labels.Rows() != r {
		return 0, errors.NewDimensionError("linear.Score", r, labels.Rows(), 0)
	}

	yTrue := mat.NewVecDense(r, nil)
	yPred := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		pred, err := l.Predict(features.Row(i))
		if err != nil {
			return 0, err
		}
		yTrue.SetVec(i, labels.At(i, 0))
		yPred.SetVec(i, pred[0])
	}
	return metrics.R2Score(yTrue, yPred)
}
