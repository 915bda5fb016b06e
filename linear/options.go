package linear

import (
	"github.com/YuminosukeSato/gdreg/pkg/log"
	"github.com/YuminosukeSato/gdreg/preprocessing"
)

// Option is a function that configures GDRegressor
type Option func(*GDRegressor)

// WithLearningRate sets the gradient-descent step size alpha
func WithLearningRate(alpha float64) Option {
	return func(r *GDRegressor) {
		r.learningRate = alpha
	}
}

// WithIterations sets the number of gradient-descent iterations
func WithIterations(n int) Option {
	return func(r *GDRegressor) {
		r.maxIter = n
	}
}

// WithNormalize sets whether features are z-score normalized before training
func WithNormalize(normalize bool) Option {
	return func(r *GDRegressor) {
		r.normalize = normalize
	}
}

// WithZeroVariance sets how the internal scaler treats constant features
func WithZeroVariance(p preprocessing.ZeroVariancePolicy) Option {
	return func(r *GDRegressor) {
		r.zeroVariance = p
	}
}

// WithInitialWeights sets the starting weight vector. The slice is copied.
func WithInitialWeights(w []float64) Option {
	return func(r *GDRegressor) {
		r.initialWeights = append([]float64(nil), w...)
	}
}

// WithInitialIntercept sets the starting bias
func WithInitialIntercept(b float64) Option {
	return func(r *GDRegressor) {
		r.initialIntercept = b
	}
}

// WithRegressorProgress registers a progress callback passed to GradientDescent
func WithRegressorProgress(fn ProgressFunc) Option {
	return func(r *GDRegressor) {
		r.progress = fn
	}
}

// WithRegressorLogger overrides the model logger
func WithRegressorLogger(l log.Logger) Option {
	return func(r *GDRegressor) {
		if l != nil {
			r.logger = l
		}
	}
}
