package learners

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlsys/core/model"
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

func TestLookup(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for _, name := range []string{"baseline", "Linear", " BASELINE "} {
		k, err := Lookup(name)
		require.NoError(t, err, name)
		l, err := New(k, rng)
		require.NoError(t, err)
		assert.Equal(t, k.String(), model.NameOf(l))
	}
}

func TestLookup_Unrecognized(t *testing.T) {
	_, err := Lookup("svm")
	var ul *errors.UnrecognizedLearnerError
	require.True(t, errors.As(err, &ul))
	assert.Equal(t, "svm", ul.Name)
	assert.False(t, errors.Is(err, errors.ErrNotImplemented))
}

func TestLookup_Placeholders(t *testing.T) {
	for _, k := range []Kind{KindPerceptron, KindNeuralNet, KindDecisionTree, KindKNN} {
		_, err := Lookup(k.String())
		var ul *errors.UnrecognizedLearnerError
		assert.True(t, errors.As(err, &ul), k.String())
		assert.True(t, errors.Is(err, errors.ErrNotImplemented), k.String())

		_, err = New(k, nil)
		assert.True(t, errors.Is(err, errors.ErrNotImplemented))
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"baseline", "decisiontree", "knn", "linear", "neuralnet", "perceptron"}, Names())
	assert.Equal(t, "unknown", Kind(42).String())
}
