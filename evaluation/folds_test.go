package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

func TestFoldBounds(t *testing.T) {
	folds, err := FoldBounds(10, 3)
	require.NoError(t, err)
	assert.Equal(t, []Fold{{0, 0, 3}, {1, 3, 6}, {2, 6, 10}}, folds)

	for _, tc := range []struct{ n, k int }{{10, 3}, {7, 7}, {5, 8}, {100, 6}, {0, 2}, {13, 1}} {
		folds, err := FoldBounds(tc.n, tc.k)
		require.NoError(t, err)
		require.Len(t, folds, tc.k)

		covered := make([]int, tc.n)
		for i, f := range folds {
			assert.Equal(t, (i+1)*tc.n/tc.k-i*tc.n/tc.k, f.Size())
			for row := f.Lo; row < f.Hi; row++ {
				covered[row]++
			}
		}
		for row, c := range covered {
			assert.Equal(t, 1, c, "row %d of n=%d k=%d", row, tc.n, tc.k)
		}
	}
}

func TestFoldBounds_Invalid(t *testing.T) {
	for _, k := range []int{0, -1} {
		_, err := FoldBounds(10, k)
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.True(t, errors.IsPrecondition(err))
	}
}

func TestParseProtocol(t *testing.T) {
	for _, p := range []Protocol{Training, Static, Random, Cross} {
		got, err := ParseProtocol(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParseProtocol(" CROSS ")
	require.NoError(t, err)
	assert.Equal(t, Cross, got)

	_, err = ParseProtocol("bootstrap")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Protocol(9).String())
}
