// Package preprocessing provides feature normalization for gradient descent.
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

// eps is the spacing of float64 values at 1.
const eps = 0x1p-52

// roundingUlps bounds the standard deviation that rounding alone can leave
// on a constant column, in units of eps*max|x|. The mean of {0.1, 0.1, 0.1}
// is off by about one ulp, which is well inside the bound.
const roundingUlps = 4

// ZScoreNormalize は各列を平均0・標準偏差1に変換する。
//
// mu[j] は列 j の平均、sigma[j] は母標準偏差（n で割る）で、
// X_norm[i][j] = (X[i][j] - mu[j]) / sigma[j] となる。
// 定数列は ZeroVarianceError を返す。X は変更されない。
//
// 使用例:
//
//	xNorm, mu, sigma, err := preprocessing.ZScoreNormalize(X)
func ZScoreNormalize(X mat.Matrix) (*mat.Dense, []float64, []float64, error) {
	mu, sigma, maxAbs, err := columnStats("ZScoreNormalize", X)
	if err != nil {
		return nil, nil, nil, err
	}

	for j := range sigma {
		if isZeroVariance(sigma[j], maxAbs[j]) {
			return nil, nil, nil, gdregErrors.NewZeroVarianceError("ZScoreNormalize", j, mu[j])
		}
	}

	return standardize(X, mu, sigma), mu, sigma, nil
}

// PeakToPeak は各列の max - min を返す。空の行列には nil を返す。
func PeakToPeak(X mat.Matrix) []float64 {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil
	}

	ptp := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		ptp[j] = floats.Max(col) - floats.Min(col)
	}
	return ptp
}

// columnStats returns the population mean, standard deviation and largest
// magnitude of every column.
func columnStats(op string, X mat.Matrix) (mu, sigma, maxAbs []float64, err error) {
	if X == nil {
		return nil, nil, nil, gdregErrors.NewValueError(op, "X is nil")
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, nil, nil, gdregErrors.NewModelError(op, "empty data", gdregErrors.ErrEmptyData)
	}

	mu = make([]float64, c)
	sigma = make([]float64, c)
	maxAbs = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mu[j], sigma[j] = stat.PopMeanStdDev(col, nil)
		if err := gdregErrors.CheckNumericalStability(op, []float64{mu[j], sigma[j]}, -1); err != nil {
			return nil, nil, nil, gdregErrors.Wrapf(err, "column %d", j)
		}
		maxAbs[j] = floats.Norm(col, math.Inf(1))
	}
	return mu, sigma, maxAbs, nil
}

// isZeroVariance reports whether sigma is within rounding error of zero for
// a column whose entries are at most maxAbs in magnitude. The bound scales
// with the data, so tiny units and large offsets are both kept.
func isZeroVariance(sigma, maxAbs float64) bool {
	return sigma <= roundingUlps*eps*maxAbs
}

func standardize(X mat.Matrix, mu, sigma []float64) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, j int, v float64) float64 {
		return (v - mu[j]) / sigma[j]
	}, X)
	return &out
}
