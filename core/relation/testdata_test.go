package relation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const weatherARFF = `% weather sample
@RELATION weather

@ATTRIBUTE outlook {sunny, overcast, rainy}
@ATTRIBUTE 'temp C' REAL
@attribute humidity NUMERIC
@ATTRIBUTE play {yes, no}

@DATA
sunny, 30, 85, no
overcast, 27.5, ?, yes
% comment inside data
rainy, 21, 96, yes,
?, 18, 70, no
`

func mustRead(t *testing.T, text string) *Matrix {
	t.Helper()
	m, err := ReadARFF(strings.NewReader(text))
	require.NoError(t, err)
	return m
}

type seqSource struct {
	draws []int
	calls []int
}

// IntN replays draws modulo n and records every n it was called with.
func (s *seqSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0] % n
	s.draws = s.draws[1:]
	return v
}
