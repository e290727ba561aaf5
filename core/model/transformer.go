package model

import "github.com/YuminosukeSato/mlsys/core/relation"

// Transformer はデータ変換のインターフェース
// 変換は行列をその場で書き換える
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(m *relation.Matrix) error

	// Transform は学習済みのパラメータでデータを変換する
	Transform(m *relation.Matrix) error

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(m *relation.Matrix) error
}
