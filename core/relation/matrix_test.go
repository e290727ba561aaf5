package relation

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

func TestNewMatrix(t *testing.T) {
	m := NewMatrix(2, 3)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	for j := 0; j < c; j++ {
		assert.True(t, m.IsContinuous(j))
	}
	assert.Equal(t, []float64{0, 0, 0}, m.Row(1))

	m.Set(1, 2, 4.5)
	assert.Equal(t, 4.5, m.At(1, 2))
	assert.Equal(t, 4.5, m.T().At(2, 1))

	empty := New()
	assert.Equal(t, 0, empty.Rows())
	assert.Equal(t, 0, empty.Cols())
}

func TestMatrix_GonumInterop(t *testing.T) {
	m := NewMatrix(2, 2)
	m.Set(0, 0, 1)
	m.Set(0, 1, 2)
	m.Set(1, 0, 3)
	m.Set(1, 1, 4)

	var prod mat.Dense
	prod.Mul(m, m.T())
	assert.Equal(t, 5.0, prod.At(0, 0))
	assert.Equal(t, 25.0, prod.At(1, 1))
}

func TestSlice(t *testing.T) {
	src := mustRead(t, weatherARFF)
	s := Slice(src, 1, 2, 2, 2)

	require.Equal(t, 2, s.Rows())
	require.Equal(t, 2, s.Cols())
	assert.Equal(t, "humidity", s.AttributeName(0))
	assert.Equal(t, src.Attribute(3).Values, s.Attribute(1).Values)
	assert.Equal(t, []float64{Missing, 0}, s.Row(0))

	s.Set(0, 1, 1)
	assert.Equal(t, 0.0, src.At(1, 3), "cells are copied")

	s.SetAttributeName(1, "label")
	assert.Equal(t, "play", src.AttributeName(3), "names are owned per matrix")

	assert.Panics(t, func() { Slice(src, 3, 0, 2, 1) })
}

func TestAppend(t *testing.T) {
	src := mustRead(t, weatherARFF)
	dst := Slice(src, 0, 0, 1, 4)
	require.NoError(t, dst.Append(src, 2, 0, 2))

	require.Equal(t, 3, dst.Rows())
	assert.Equal(t, src.Row(2), dst.Row(1))
	assert.Equal(t, src.Row(3), dst.Row(2))

	labels := Slice(src, 0, 3, 1, 1)
	require.NoError(t, labels.Append(src, 1, 3, 3))
	assert.Equal(t, 4, labels.Rows())

	err := labels.Append(src, 0, 1, 1)
	var rel *errors.IncompatibleRelationError
	require.True(t, errors.As(err, &rel))
	assert.True(t, errors.IsPrecondition(err))

	err = dst.Append(src, 3, 0, 5)
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))
}

func TestCompatible(t *testing.T) {
	a := mustRead(t, weatherARFF)
	b := mustRead(t, weatherARFF)
	assert.NoError(t, a.Compatible(b))

	assert.Error(t, a.Compatible(NewMatrix(1, 3)))
	assert.Error(t, a.Compatible(NewMatrix(1, 4)))
}

func TestColumnStatistics(t *testing.T) {
	m := NewMatrix(3, 1)
	m.Set(0, 0, 1)
	m.Set(1, 0, Missing)
	m.Set(2, 0, 3)

	assert.Equal(t, 2.0, m.ColumnMean(0))
	assert.Equal(t, 1.0, m.ColumnMin(0))
	assert.Equal(t, 3.0, m.ColumnMax(0))

	all := NewMatrix(2, 1)
	all.Set(0, 0, Missing)
	all.Set(1, 0, Missing)
	assert.True(t, math.IsNaN(all.ColumnMean(0)))
	assert.Equal(t, Missing, all.ColumnMin(0))
	assert.Equal(t, Missing, all.ColumnMax(0))
	assert.Equal(t, Missing, all.MostCommonValue(0))
}

func TestMostCommonValue(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want float64
	}{
		{"single winner", []float64{2, 0, 2, 1, 2}, 2},
		{"tie picks lowest", []float64{3, 1, 3, 1, 2}, 1},
		{"missing ignored", []float64{Missing, Missing, Missing, 4, 5, 5}, 5},
		{"all distinct", []float64{9, 8, 7}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatrix(len(tt.vals), 1)
			for i, v := range tt.vals {
				m.Set(i, 0, v)
			}
			assert.Equal(t, tt.want, m.MostCommonValue(0))
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := mustRead(t, weatherARFF)
	m := mustRead(t, weatherARFF)
	ranges := m.Normalize()

	require.Len(t, ranges, 4)
	assert.Nil(t, ranges[0])
	assert.Nil(t, ranges[3])
	assert.Equal(t, &Range{Min: 18, Max: 30}, ranges[1])

	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(3, 1))
	assert.Equal(t, Missing, m.At(1, 2))
	for i := 0; i < m.Rows(); i++ {
		assert.Equal(t, raw.At(i, 0), m.At(i, 0))
		assert.Equal(t, raw.At(i, 3), m.At(i, 3))
	}

	other := mustRead(t, weatherARFF)
	require.NoError(t, other.NormalizeWith(ranges))
	for i := 0; i < m.Rows(); i++ {
		assert.Equal(t, m.Row(i), other.Row(i))
	}

	assert.Error(t, other.NormalizeWith(ranges[:2]))
}

func TestNormalize_DegenerateRange(t *testing.T) {
	var warned []error
	errors.SetZerologWarnFunc(func(w error) { warned = append(warned, w) })
	defer errors.SetZerologWarnFunc(nil)

	m := NewMatrix(3, 1)
	m.SetAttributeName(0, "flat")
	for i := 0; i < 3; i++ {
		m.Set(i, 0, 7)
	}
	m.Normalize()

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, m.At(i, 0))
	}
	require.Len(t, warned, 1)
	var dr *errors.DegenerateRangeWarning
	require.True(t, errors.As(warned[0], &dr))
	assert.Equal(t, "flat", dr.Column)
}

func TestShuffle_Permutation(t *testing.T) {
	m := NewMatrix(50, 1)
	for i := 0; i < 50; i++ {
		m.Set(i, 0, float64(i))
	}
	m.Shuffle(rand.New(rand.NewPCG(1, 2)))

	seen := make(map[float64]bool)
	for i := 0; i < 50; i++ {
		seen[m.At(i, 0)] = true
	}
	assert.Len(t, seen, 50)

	src := &seqSource{}
	NewMatrix(4, 1).Shuffle(src)
	assert.Equal(t, []int{4, 3, 2}, src.calls)
}

func TestShuffleWithBuddy(t *testing.T) {
	const n = 20
	a := NewMatrix(n, 2)
	b := NewMatrix(n, 1)
	for i := 0; i < n; i++ {
		a.Set(i, 0, float64(i))
		a.Set(i, 1, float64(i*10))
		b.Set(i, 0, float64(-i))
	}
	require.NoError(t, a.ShuffleWithBuddy(rand.New(rand.NewPCG(7, 7)), b))

	moved := false
	for i := 0; i < n; i++ {
		assert.Equal(t, -a.At(i, 0), b.At(i, 0))
		assert.Equal(t, a.At(i, 0)*10, a.At(i, 1))
		moved = moved || a.At(i, 0) != float64(i)
	}
	assert.True(t, moved)

	err := a.ShuffleWithBuddy(rand.New(rand.NewPCG(1, 1)), NewMatrix(3, 1))
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}
