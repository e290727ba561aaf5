package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// echo predicts the first feature as the label.
type echo struct{}

func (echo) Train(_, _ *relation.Matrix) error { return nil }
func (echo) Predict(f []float64) ([]float64, error) {
	return []float64{f[0]}, nil
}

func readARFF(t *testing.T, text string) *relation.Matrix {
	t.Helper()
	m, err := relation.ReadARFF(strings.NewReader(text))
	require.NoError(t, err)
	return m
}

const nominalPairs = `@ATTRIBUTE guess {a, b, c}
@ATTRIBUTE actual {a, b, c}
@DATA
a, a
b, b
b, c
c, c
a, b
`

func TestMeasureAccuracy_Nominal(t *testing.T) {
	data := readARFF(t, nominalPairs)
	features, labels := split(data, 0, data.Rows())

	score, cm, err := MeasureAccuracy(echo{}, features, labels, true)
	require.NoError(t, err)
	assert.Equal(t, MetricAccuracy, score.Metric)
	assert.Equal(t, 0.6, score.Value)

	require.NotNil(t, cm)
	assert.Equal(t, 3, cm.Rows())
	assert.Equal(t, []string{"a", "b", "c"}, []string{cm.AttributeName(0), cm.AttributeName(1), cm.AttributeName(2)})
	assert.Equal(t, []float64{1, 0, 0}, cm.Row(0))
	assert.Equal(t, []float64{1, 1, 0}, cm.Row(1))
	assert.Equal(t, []float64{0, 1, 1}, cm.Row(2))

	total := 0.0
	for i := 0; i < cm.Rows(); i++ {
		for j := 0; j < cm.Cols(); j++ {
			total += cm.At(i, j)
		}
	}
	assert.Equal(t, float64(data.Rows()), total)

	_, cm, err = MeasureAccuracy(echo{}, features, labels, false)
	require.NoError(t, err)
	assert.Nil(t, cm)
}

func TestMeasureAccuracy_Continuous(t *testing.T) {
	data := readARFF(t, "@ATTRIBUTE p REAL\n@ATTRIBUTE y REAL\n@DATA\n1,1\n2,4\n3,3\n")
	features, labels := split(data, 0, data.Rows())

	score, cm, err := MeasureAccuracy(echo{}, features, labels, true)
	require.NoError(t, err)
	assert.Nil(t, cm)
	assert.Equal(t, MetricRMSE, score.Metric)
	assert.InDelta(t, 1.1547005383792515, score.Value, 1e-12)
}

func TestMeasureAccuracy_Preconditions(t *testing.T) {
	data := readARFF(t, nominalPairs)
	features, labels := split(data, 0, data.Rows())

	tests := []struct {
		name     string
		features *relation.Matrix
		labels   *relation.Matrix
	}{
		{"row mismatch", relation.Slice(features, 0, 0, 2, 1), labels},
		{"two label columns", features, relation.Slice(data, 0, 0, data.Rows(), 2)},
		{"no rows", relation.Slice(features, 0, 0, 0, 1), relation.Slice(labels, 0, 0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := MeasureAccuracy(echo{}, tt.features, tt.labels, false)
			require.Error(t, err)
			assert.True(t, errors.IsPrecondition(err), "%v", err)
		})
	}
}

func TestMeasureAccuracy_OutOfRange(t *testing.T) {
	data := readARFF(t, nominalPairs)
	features, labels := split(data, 0, data.Rows())

	labels.Set(2, 0, 3)
	_, _, err := MeasureAccuracy(echo{}, features, labels, false)
	assert.ErrorContains(t, err, "the label is out of range")
	assert.True(t, errors.IsPrecondition(err))

	labels.Set(2, 0, 2)
	features.Set(0, 0, 7)
	score, _, err := MeasureAccuracy(echo{}, features, labels, false)
	require.NoError(t, err)
	assert.Equal(t, 0.4, score.Value)

	_, _, err = MeasureAccuracy(echo{}, features, labels, true)
	assert.True(t, errors.IsPrecondition(err))
}

func TestMeasureAccuracy_MissingLabel(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"nominal", "@ATTRIBUTE g {x, y}\n@ATTRIBUTE c {x, y}\n@DATA\nx, x\ny, ?\ny, y\n", "the label is out of range"},
		{"continuous", "@ATTRIBUTE p REAL\n@ATTRIBUTE y REAL\n@DATA\n1, 1\n2, ?\n", "the label is missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := readARFF(t, tt.text)
			features, labels := split(data, 0, data.Rows())
			for _, withConfusion := range []bool{false, true} {
				score, cm, err := MeasureAccuracy(echo{}, features, labels, withConfusion)
				assert.ErrorContains(t, err, tt.msg)
				assert.True(t, errors.IsPrecondition(err))
				assert.Zero(t, score)
				assert.Nil(t, cm)
			}
		})
	}
}
