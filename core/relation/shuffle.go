package relation

import (
	"github.com/YuminosukeSato/mlsys/pkg/errors"
)

// Source は行の並べ替えに使う乱数源です。*math/rand/v2.Rand が満たします。
type Source interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// Shuffle は Fisher–Yates 法で行の順序をその場で並べ替えます。
func (m *Matrix) Shuffle(r Source) {
	for n := m.Rows(); n > 1; n-- {
		i := r.IntN(n)
		m.data[n-1], m.data[i] = m.data[i], m.data[n-1]
	}
}

// ShuffleWithBuddy は m と buddy の行を同じ置換で並べ替え、両者の行の対応を保ちます。
func (m *Matrix) ShuffleWithBuddy(r Source, buddy *Matrix) error {
	if m.Rows() != buddy.Rows() {
		return errors.NewDimensionError("relation.ShuffleWithBuddy", m.Rows(), buddy.Rows(), 0)
	}
	for n := m.Rows(); n > 1; n-- {
		i := r.IntN(n)
		m.data[n-1], m.data[i] = m.data[i], m.data[n-1]
		buddy.data[n-1], buddy.data[i] = buddy.data[i], buddy.data[n-1]
	}
	return nil
}
