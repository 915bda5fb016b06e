// Package gdreg fits multivariate linear regression models with batch
// gradient descent.
//
// The model is y = X·w + b with the squared-error cost
//
//	J(w,b) = (1/(2m)) Σ (X[i]·w + b − y[i])²
//
// minimized by a fixed number of full-batch gradient steps. Features can be
// z-score normalized first so that a single learning rate suits columns of
// very different ranges.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gdreg/dataset"
//	    "github.com/YuminosukeSato/gdreg/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X, y := dataset.Housing()
//
//	    reg := linear.NewGDRegressor(
//	        linear.WithLearningRate(0.1),
//	        linear.WithIterations(1000),
//	    )
//	    if err := reg.Fit(X, mat.NewDense(3, 1, mat.Col(nil, 0, y))); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := reg.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", mat.Formatted(predictions))
//	}
//
// # Packages
//
//   - linear: cost, gradient, GradientDescent and the GDRegressor model
//   - preprocessing: z-score normalization and StandardScaler
//   - metrics: MSE, RMSE, MAE, R² and an evaluation Report
//   - dataset: the housing example and CSV loading
//   - report: cost history charts
//   - core/model: model interfaces, fitted state and weight snapshots
//   - core/parallel: row-parallel accumulation for large inputs
//   - pkg/errors, pkg/log: error types, warnings and structured logging
//
// The gdreg command in cmd/gdreg wraps these packages in a CLI.
//
// # Performance
//
// Gradient accumulation is split across CPU cores once the number of rows
// exceeds core/parallel.DefaultThreshold.
package gdreg
