package linear

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

var benchSizes = []struct {
	name string
	rows int
	cols int
}{
	{"Small_100x10", 100, 10},
	{"Medium_1000x10", 1000, 10}, // 並列処理の閾値
	{"Medium_2000x10", 2000, 10},
	{"Large_10000x20", 10000, 20},
	{"XLarge_50000x50", 50000, 50},
}

// BenchmarkComputeCost はコスト計算のベンチマーク
func BenchmarkComputeCost(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			X, y, w, bias := randomProblem(size.rows, size.cols, 42)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := ComputeCost(X, y, w, bias); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkComputeGradient は勾配計算のベンチマーク（閾値を超えると並列化される）
func BenchmarkComputeGradient(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(size.name, func(b *testing.B) {
			X, y, w, bias := randomProblem(size.rows, size.cols, 42)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := ComputeGradient(X, y, w, bias); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkGradientDescent は 100 反復の勾配降下法のベンチマーク
func BenchmarkGradientDescent(b *testing.B) {
	X, y, _, _ := randomProblem(5000, 20, 42)
	w0 := mat.NewVecDense(20, nil)
	logger := quietLogger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := GradientDescent(X, y, w0, 0, ComputeCost, ComputeGradient, 0.1, 100, WithLogger(logger)); err != nil {
			b.Fatal(err)
		}
	}
}
