package baseline

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlsys/core/relation"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

func split(t *testing.T, text string) (*relation.Matrix, *relation.Matrix) {
	t.Helper()
	m, err := relation.ReadARFF(strings.NewReader(text))
	require.NoError(t, err)
	last := m.Cols() - 1
	return relation.Slice(m, 0, 0, m.Rows(), last), relation.Slice(m, 0, last, m.Rows(), 1)
}

func TestLearner_NominalMode(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("@ATTRIBUTE x REAL\n@ATTRIBUTE y {A, B, C}\n@DATA\n")
	for i, c := range strings.Split("A A B C A B A C B A", " ") {
		sb.WriteString(strings.Repeat("1", i+1) + ", " + c + "\n")
	}
	features, labels := split(t, sb.String())

	l := New()
	require.NoError(t, l.Train(features, labels))
	for i := 0; i < features.Rows(); i++ {
		pred, err := l.Predict(features.Row(i))
		require.NoError(t, err)
		assert.Equal(t, []float64{0}, pred)
	}
	name, _ := labels.ValueName(0, 0)
	assert.Equal(t, "A", name)
}

func TestLearner_ContinuousMean(t *testing.T) {
	features, labels := split(t, "@ATTRIBUTE x REAL\n@ATTRIBUTE y REAL\n@DATA\n0,1\n0,2\n0,3\n0,4\n")

	l := New()
	require.NoError(t, l.Train(features, labels))
	pred, err := l.Predict([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5}, pred)
	assert.Equal(t, "baseline", l.Name())
}

func TestLearner_MissingLabels(t *testing.T) {
	var warned []error
	errors.SetZerologWarnFunc(func(w error) { warned = append(warned, w) })
	defer errors.SetZerologWarnFunc(nil)

	features, labels := split(t, "@ATTRIBUTE x REAL\n@ATTRIBUTE y REAL\n@DATA\n0,?\n1,?\n")
	l := New()
	require.NoError(t, l.Train(features, labels))
	pred, err := l.Predict(nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(pred[0]))
	require.Len(t, warned, 1)
	var um *errors.UndefinedMetricWarning
	assert.True(t, errors.As(warned[0], &um))
}

func TestLearner_Errors(t *testing.T) {
	l := New()
	_, err := l.Predict(nil)
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	err = l.Train(relation.NewMatrix(3, 1), relation.NewMatrix(2, 1))
	assert.True(t, errors.IsPrecondition(err))
}

func TestLearner_NoRows(t *testing.T) {
	var warned []error
	errors.SetZerologWarnFunc(func(w error) { warned = append(warned, w) })
	defer errors.SetZerologWarnFunc(nil)

	m, err := relation.ReadARFF(strings.NewReader("@ATTRIBUTE x REAL\n@ATTRIBUTE y REAL\n@ATTRIBUTE c {A, B}\n@DATA\n"))
	require.NoError(t, err)
	features, labels := relation.Slice(m, 0, 0, 0, 1), relation.Slice(m, 0, 1, 0, 2)

	l := New()
	require.NoError(t, l.Train(features, labels))
	assert.True(t, l.IsFitted())
	pred, err := l.Predict([]float64{1})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(pred[0]))
	assert.Equal(t, relation.Missing, pred[1])
	assert.Len(t, warned, 2)
}
