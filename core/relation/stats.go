package relation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// present returns the non-missing cells of column col.
func (m *Matrix) present(col int) []float64 {
	vals := make([]float64, 0, m.Rows())
	for _, row := range m.data {
		if v := row[col]; v != Missing {
			vals = append(vals, v)
		}
	}
	return vals
}

// ColumnMean は欠損を除いた列 col の平均を返します。
// すべて欠損の場合は NaN です。
func (m *Matrix) ColumnMean(col int) float64 {
	vals := m.present(col)
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// ColumnMin returns the smallest non-missing value of column col, or
// Missing when the column holds no data.
func (m *Matrix) ColumnMin(col int) float64 {
	vals := m.present(col)
	if len(vals) == 0 {
		return Missing
	}
	return floats.Min(vals)
}

// ColumnMax returns the largest non-missing value of column col, or
// Missing when the column holds no data.
func (m *Matrix) ColumnMax(col int) float64 {
	vals := m.present(col)
	if len(vals) == 0 {
		return Missing
	}
	return floats.Max(vals)
}

// MostCommonValue は列 col で最も頻度の高い値を返します。
// 同数の場合は最も小さい値が選ばれます。すべて欠損なら Missing です。
func (m *Matrix) MostCommonValue(col int) float64 {
	vals := m.present(col)
	if len(vals) == 0 {
		return Missing
	}
	sort.Float64s(vals)
	best, bestCount := vals[0], 0
	for i := 0; i < len(vals); {
		j := i
		for j < len(vals) && vals[j] == vals[i] {
			j++
		}
		if j-i > bestCount {
			best, bestCount = vals[i], j-i
		}
		i = j
	}
	return best
}
