package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。y は m×1 の行列
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は生の入力データに対する予測を m×1 の行列で返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// LinearModel は線形モデル y = X·w + b のインターフェース
type LinearModel interface {
	Fitter
	Predictor
	// Coefficients は学習された重み w を返す
	Coefficients() []float64
	// Intercept は学習された切片 b を返す
	Intercept() float64
	// Score はモデルの決定係数（R²）を計算する
	Score(X, y mat.Matrix) (float64, error)
}
