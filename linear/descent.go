package linear

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
	"github.com/YuminosukeSato/gdreg/pkg/log"
)

// ProgressFunc receives the iteration index and the cost after that
// iteration's update. It is called on the same iterations that are logged.
type ProgressFunc func(iteration int, cost float64)

// DescentResult holds the outcome of GradientDescent.
type DescentResult struct {
	// W is a fresh vector; it never aliases the caller's initial weights.
	W *mat.VecDense
	B float64
	// CostHistory has one entry per iteration: the cost of the parameters
	// produced by that iteration.
	CostHistory []float64
}

// DescentOption configures GradientDescent.
type DescentOption func(*descentConfig)

type descentConfig struct {
	logger   log.Logger
	progress ProgressFunc
}

// WithProgress registers a callback for periodic progress reports.
func WithProgress(fn ProgressFunc) DescentOption {
	return func(c *descentConfig) {
		c.progress = fn
	}
}

// WithLogger overrides the logger used for progress and lifecycle records.
func WithLogger(l log.Logger) DescentOption {
	return func(c *descentConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ProgressInterval returns ceil(numIters/10), the spacing between progress
// reports. It is at least 1.
func ProgressInterval(numIters int) int {
	if numIters <= 10 {
		return 1
	}
	return int(math.Ceil(float64(numIters) / 10))
}

// GradientDescent runs numIters steps of batch gradient descent starting from
// (wInit, bInit):
//
//	dj_dw, dj_db = gradientFn(X, y, w, b)
//	w = w - alpha*dj_dw
//	b = b - alpha*dj_db
//
// Both parameters are updated from the same pre-update gradient. The cost of
// the updated parameters is appended to the history every iteration and
// reported every ProgressInterval(numIters) iterations, starting at 0. There
// is no early stopping. A cost that becomes NaN or Inf raises a single
// DivergenceWarning through errors.Warn and the loop keeps going.
//
// wInit is copied and never modified.
func GradientDescent(
	X mat.Matrix, y, wInit mat.Vector, bInit float64,
	costFn CostFunc, gradientFn GradientFunc,
	alpha float64, numIters int,
	opts ...DescentOption,
) (*DescentResult, error) {
	cfg := descentConfig{logger: log.GetLoggerWithName("linear.descent")}
	for _, opt := range opts {
		opt(&cfg)
	}

	if costFn == nil {
		return nil, gdregErrors.NewValidationError("costFn", "must not be nil", nil)
	}
	if gradientFn == nil {
		return nil, gdregErrors.NewValidationError("gradientFn", "must not be nil", nil)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha <= 0 {
		return nil, gdregErrors.NewValidationError("alpha", "must be a positive finite number", alpha)
	}
	if numIters < 0 {
		return nil, gdregErrors.NewValidationError("numIters", "must be non-negative", numIters)
	}
	_, n, err := checkShapes("GradientDescent", X, y, wInit)
	if err != nil {
		return nil, err
	}

	w := mat.VecDenseCopyOf(wInit)
	b := bInit
	history := make([]float64, 0, numIters)
	interval := ProgressInterval(numIters)
	logProgress := cfg.logger.Enabled(context.Background(), log.LevelInfo)
	diverged := false
	start := time.Now()

	cfg.logger.Debug("Gradient descent started",
		log.OperationKey, log.OperationGradientDescent,
		log.LearningRateKey, alpha,
		log.IterationsKey, numIters,
	)

	for i := 0; i < numIters; i++ {
		djdw, djdb, err := gradientFn(X, y, w, b)
		if err != nil {
			return nil, gdregErrors.Wrapf(err, "gradient descent iteration %d", i)
		}
		if djdw == nil || djdw.Len() != n {
			got := 0
			if djdw != nil {
				got = djdw.Len()
			}
			return nil, gdregErrors.NewDimensionError("GradientDescent", n, got, 0)
		}

		w.AddScaledVec(w, -alpha, djdw)
		b -= alpha * djdb

		cost, err := costFn(X, y, w, b)
		if err != nil {
			return nil, gdregErrors.Wrapf(err, "gradient descent iteration %d", i)
		}
		history = append(history, cost)

		if !diverged && !gdregErrors.IsFinite(cost) {
			diverged = true
			gdregErrors.Warn(gdregErrors.NewDivergenceWarning("GradientDescent", i, cost, alpha))
		}

		if i%interval == 0 {
			if logProgress {
				cfg.logger.Info(fmt.Sprintf("Iteration %4d : cost : %8.2f", i, cost),
					log.IterationKey, i,
					log.LossKey, cost,
				)
			}
			if cfg.progress != nil {
				cfg.progress(i, cost)
			}
		}
	}

	fields := []any{
		log.OperationKey, log.OperationGradientDescent,
		log.IterationsKey, numIters,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	if len(history) > 0 {
		fields = append(fields, log.LossKey, history[len(history)-1])
	}
	cfg.logger.Debug("Gradient descent completed", fields...)

	return &DescentResult{W: w, B: b, CostHistory: history}, nil
}
