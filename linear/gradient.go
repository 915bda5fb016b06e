package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdreg/core/parallel"
)

// ComputeGradient は ComputeCost の (w, b) に関する偏微分を計算する
//
//	dj_dw[j] = (1/m) * Σ err_i * X[i][j]
//	dj_db    = (1/m) * Σ err_i
//
// 行数が parallel.DefaultThreshold を超える場合は行を CPU コア数で分割して
// 部分和を並列に求める。
func ComputeGradient(X mat.Matrix, y, w mat.Vector, b float64) (*mat.VecDense, float64, error) {
	m, n, err := checkShapes("ComputeGradient", X, y, w)
	if err != nil {
		return nil, 0, err
	}

	r := residuals(X, y, w, b)

	// acc[0:n] は dj_dw、acc[n] は dj_db の部分和
	sums := parallel.SumRows(m, n+1, parallel.DefaultThreshold, func(start, end int, acc []float64) {
		for i := start; i < end; i++ {
			e := r.AtVec(i)
			for j := 0; j < n; j++ {
				acc[j] += e * X.At(i, j)
			}
			acc[n] += e
		}
	})

	djdw := mat.NewVecDense(n, sums[:n])
	djdw.ScaleVec(1/float64(m), djdw)
	return djdw, sums[n] / float64(m), nil
}
