// Package model は評価ハーネスが学習器に求める契約を定義します。
package model

import (
	"github.com/YuminosukeSato/mlsys/core/relation"
)

// Trainer は学習可能なモデルのインターフェース
type Trainer interface {
	// Train は特徴量行列とラベル行列（行は対応する）でモデルを学習させる。
	// 入力が不正な場合はエラーを返す。
	Train(features, labels *relation.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は1行分の特徴量からラベル列ごとの予測値を返す。
	// カテゴリ列の予測値は辞書コード。同じ入力には同じ出力を返す。
	Predict(features []float64) ([]float64, error)
}

// Learner は評価ハーネスが駆動する学習器
type Learner interface {
	Trainer
	Predictor
}

// Named はレポートに表示する名前を持つ学習器
type Named interface {
	Name() string
}

// NameOf returns l's name when it implements Named, and "unknown" otherwise.
func NameOf(l any) string {
	if n, ok := l.(Named); ok {
		return n.Name()
	}
	return "unknown"
}
