// Package preprocessing は評価前にデータセットへ適用する変換を提供します。
package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/mlsys/core/model"
	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
	"github.com/YuminosukeSato/mlsys/pkg/log"
)

// MinMaxScaler は連続値列を [0,1] にスケーリングする変換器
// カテゴリ列と欠損セルは変更しない
type MinMaxScaler struct {
	model.BaseEstimator

	// Ranges は学習データの列ごとの最小値・最大値 (カテゴリ列は nil)
	Ranges relation.Ranges

	logger log.Logger
}

var _ model.Transformer = (*MinMaxScaler)(nil)

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler()
//	err := scaler.FitTransform(train)
//	err = scaler.Transform(test) // 学習データの範囲で変換
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{logger: log.GetLoggerWithName("preprocessing")}
}

// Fit は訓練データから連続値列の最小値・最大値を計算する
// データは変更しない
func (s *MinMaxScaler) Fit(m *relation.Matrix) error {
	if m.Rows() == 0 || m.Cols() == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "", errors.ErrEmptyData)
	}
	s.Ranges = make(relation.Ranges, m.Cols())
	for j := range s.Ranges {
		if m.IsContinuous(j) {
			s.Ranges[j] = &relation.Range{Min: m.ColumnMin(j), Max: m.ColumnMax(j)}
			s.logger.Debug("Column range",
				log.ColumnKey, m.AttributeName(j),
				"min", s.Ranges[j].Min,
				"max", s.Ranges[j].Max,
			)
		}
	}
	s.SetFitted(m.Cols(), 0)
	return nil
}

// Transform は学習済みの範囲でデータをその場でスケーリングする
func (s *MinMaxScaler) Transform(m *relation.Matrix) error {
	if err := s.RequireFitted("MinMaxScaler", "Transform"); err != nil {
		return err
	}
	if err := m.NormalizeWith(s.Ranges); err != nil {
		return err
	}
	s.logger.Debug("Data normalized",
		log.OperationKey, log.OperationNormalize,
		log.SamplesKey, m.Rows(),
		log.AttributesKey, m.Cols(),
	)
	return nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *MinMaxScaler) FitTransform(m *relation.Matrix) error {
	if err := s.Fit(m); err != nil {
		return err
	}
	return s.Transform(m)
}

// String はスケーラーの文字列表現を返す
func (s *MinMaxScaler) String() string {
	if !s.IsFitted() {
		return "MinMaxScaler(unfitted)"
	}
	n := 0
	for _, r := range s.Ranges {
		if r != nil {
			n++
		}
	}
	return fmt.Sprintf("MinMaxScaler(columns=%d, continuous=%d)", len(s.Ranges), n)
}
