package model

import "gonum.org/v1/gonum/mat"

// Transformer は特徴量変換のインターフェース
type Transformer interface {
	// Fit は変換に必要な統計量を学習する
	Fit(X mat.Matrix) error

	// Transform は学習済みの統計量でデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)

	// InverseTransform は変換後の空間から元の空間へ戻す
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}
