package linear

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/mlsys/core/relation"
)

// createData は y = 1 + Σ (j+1)/2 * x_j + 小さなノイズ のデータを生成する
func createData(rows, cols int, noise float64) (*relation.Matrix, *relation.Matrix) {
	// シードを固定して再現性を確保
	rng := rand.New(rand.NewPCG(42, 42))

	X := relation.NewMatrix(rows, cols)
	y := relation.NewMatrix(rows, 1)
	for i := 0; i < rows; i++ {
		sum := 1.0 // 切片
		for j := 0; j < cols; j++ {
			v := rng.Float64()*2.0 - 1.0
			X.Set(i, j, v)
			sum += v * float64(j+1) * 0.5
		}
		sum += (rng.Float64() - 0.5) * noise
		y.Set(i, 0, sum)
	}
	return X, y
}

func BenchmarkLearnerTrain(b *testing.B) {
	sizes := []struct{ rows, cols int }{
		{100, 5},
		{1000, 10},
		{10000, 20},
	}
	for _, size := range sizes {
		X, y := createData(size.rows, size.cols, 0.1)
		b.Run(fmt.Sprintf("%dx%d", size.rows, size.cols), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := New().Train(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLearnerPredict(b *testing.B) {
	X, y := createData(1000, 10, 0.1)
	lr := New()
	if err := lr.Train(X, y); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := lr.Predict(X.Row(i % X.Rows())); err != nil {
			b.Fatal(err)
		}
	}
}
