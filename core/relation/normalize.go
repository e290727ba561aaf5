package relation

import (
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Range は連続値列の正規化に使った最小値と最大値です。
type Range struct {
	Min float64
	Max float64
}

// Ranges は列ごとの Range です。カテゴリ列の要素は nil です。
type Ranges []*Range

// Normalize は各連続値列を [0,1] に min-max スケーリングし、使用した範囲を返します。
// 返された範囲は NormalizeWith で別のデータセットに適用できます。
func (m *Matrix) Normalize() Ranges {
	ranges := make(Ranges, m.Cols())
	for j := range m.attrs {
		if !m.IsContinuous(j) {
			continue
		}
		ranges[j] = &Range{Min: m.ColumnMin(j), Max: m.ColumnMax(j)}
	}
	// 列数は一致するので失敗しない
	_ = m.NormalizeWith(ranges)
	return ranges
}

// NormalizeWith は保存済みの範囲で連続値列をスケーリングします。
// 欠損セルとカテゴリ列は変更されません。max == min の列はスケール1として扱い、
// DegenerateRangeWarning を発生させます。
func (m *Matrix) NormalizeWith(ranges Ranges) error {
	if len(ranges) != m.Cols() {
		return errors.NewDimensionError("relation.NormalizeWith", m.Cols(), len(ranges), 1)
	}
	for j, r := range ranges {
		if r == nil || !m.IsContinuous(j) || r.Min == Missing {
			continue
		}
		scale := r.Max - r.Min
		if scale == 0 {
			errors.Warn(errors.NewDegenerateRangeWarning(m.AttributeName(j), r.Min))
			scale = 1
		}
		for _, row := range m.data {
			if row[j] != Missing {
				row[j] = (row[j] - r.Min) / scale
			}
		}
	}
	return nil
}
