package model

import (
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator は全ての学習器の基底となる構造体
// 学習状態と、学習時に観測した特徴量数・ラベル列数を保持する
type BaseEstimator struct {
	state     EstimatorState
	nFeatures int
	nLabels   int
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定し、学習時の次元を記録する
func (e *BaseEstimator) SetFitted(nFeatures, nLabels int) {
	e.state = Fitted
	e.nFeatures = nFeatures
	e.nLabels = nLabels
}

// Dims は学習時の特徴量数とラベル列数を返す
func (e *BaseEstimator) Dims() (nFeatures, nLabels int) {
	return e.nFeatures, e.nLabels
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	*e = BaseEstimator{}
}

// RequireFitted は未学習なら NotFittedError を返す
func (e *BaseEstimator) RequireFitted(name, method string) error {
	if !e.IsFitted() {
		return errors.NewNotFittedError(name, method)
	}
	return nil
}
