// Package linear はバッチ勾配降下法による多変量線形回帰を提供する。
//
// ComputeCost・ComputeGradient・GradientDescent が関数レベルの核であり、
// GDRegressor はそれらを Fit / Predict 形式の推定器として包む。
package linear

import (
	"gonum.org/v1/gonum/mat"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

// CostFunc は (w, b) における目的関数の値を返す
type CostFunc func(X mat.Matrix, y, w mat.Vector, b float64) (float64, error)

// GradientFunc は (w, b) における目的関数の勾配 (dj_dw, dj_db) を返す
type GradientFunc func(X mat.Matrix, y, w mat.Vector, b float64) (*mat.VecDense, float64, error)

var (
	_ CostFunc     = ComputeCost
	_ GradientFunc = ComputeGradient
)

// checkShapes は X (m×n), y (m), w (n) の形状を検証し m, n を返す
func checkShapes(op string, X mat.Matrix, y, w mat.Vector) (int, int, error) {
	if X == nil || y == nil || w == nil {
		return 0, 0, gdregErrors.NewValueError(op, "X, y and w must not be nil")
	}

	m, n := X.Dims()
	if m == 0 || n == 0 {
		return 0, 0, gdregErrors.NewModelError(op, "empty data", gdregErrors.ErrEmptyData)
	}
	if y.Len() != m {
		return 0, 0, gdregErrors.NewDimensionError(op, m, y.Len(), 0)
	}
	if w.Len() != n {
		return 0, 0, gdregErrors.NewDimensionError(op, n, w.Len(), 1)
	}
	return m, n, nil
}

// residuals は err_i = X[i]·w + b - y[i] を返す
func residuals(X mat.Matrix, y, w mat.Vector, b float64) *mat.VecDense {
	m, _ := X.Dims()
	r := mat.NewVecDense(m, nil)
	r.MulVec(X, w)
	for i := 0; i < m; i++ {
		r.SetVec(i, r.AtVec(i)+b-y.AtVec(i))
	}
	return r
}

// ComputeCost は二乗誤差コスト
//
//	J(w, b) = (1 / 2m) * Σ (X[i]·w + b - y[i])²
//
// を計算する。戻り値は常に 0 以上で、完全に当てはまる場合に限り 0 となる。
// 入力は変更しない。
func ComputeCost(X mat.Matrix, y, w mat.Vector, b float64) (float64, error) {
	m, _, err := checkShapes("ComputeCost", X, y, w)
	if err != nil {
		return 0, err
	}

	r := residuals(X, y, w, b)
	return mat.Dot(r, r) / (2 * float64(m)), nil
}
