package linear

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdreg/core/model"
	"github.com/YuminosukeSato/gdreg/metrics"
	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
	"github.com/YuminosukeSato/gdreg/pkg/log"
	"github.com/YuminosukeSato/gdreg/preprocessing"
)

const modelName = "GDRegressor"

// GDRegressor is a multivariate linear regression model trained with batch
// gradient descent.
type GDRegressor struct {
	state *model.StateManager

	learningRate     float64
	maxIter          int
	normalize        bool
	zeroVariance     preprocessing.ZeroVariancePolicy
	initialWeights   []float64
	initialIntercept float64
	progress         ProgressFunc
	logger           log.Logger

	scaler      *preprocessing.StandardScaler
	weights     *mat.VecDense
	intercept   float64
	costHistory []float64
}

var _ model.LinearModel = (*GDRegressor)(nil)

// NewGDRegressor creates an untrained model.
//
// Defaults: learning rate 0.1, 1000 iterations, z-score normalization on,
// zero initial weights and intercept.
//
// Example:
//
//	reg := linear.NewGDRegressor(linear.WithLearningRate(0.1))
//	err := reg.Fit(X, y)
//	predictions, err := reg.Predict(X)
func NewGDRegressor(opts ...Option) *GDRegressor {
	r := &GDRegressor{
		state:        model.NewStateManager(),
		learningRate: 0.1,
		maxIter:      1000,
		normalize:    true,
	}
	r.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, modelName,
	)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fit trains the model on X (m×n) and y (m×1).
//
// When normalization is enabled, an internal StandardScaler is fitted on X
// and gradient descent runs in the normalized space; Predict applies the
// same transform to its input.
//
// Errors:
//   - ErrEmptyData: if X is empty
//   - DimensionError: if y does not have m rows or the initial weights do not have n entries
//   - ValueError: if y has more than one column
//   - ValidationError: if the learning rate or iteration count is invalid
//   - ZeroVarianceError: if a feature is constant and the scaler rejects it
func (r *GDRegressor) Fit(X, y mat.Matrix) (err error) {
	defer gdregErrors.Recover(&err, "GDRegressor.Fit")

	startTime := time.Now()
	m, n := X.Dims()
	my, cy := y.Dims()

	r.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, m,
		log.FeaturesKey, n,
		log.LearningRateKey, r.learningRate,
		log.IterationsKey, r.maxIter,
		log.NormalizeKey, r.normalize,
	)

	if m == 0 || n == 0 {
		return gdregErrors.NewModelError("GDRegressor.Fit", "empty data", gdregErrors.ErrEmptyData)
	}
	if my != m {
		return gdregErrors.NewDimensionError("GDRegressor.Fit", m, my, 0)
	}
	if cy != 1 {
		return gdregErrors.NewValueError("GDRegressor.Fit", "y must be a column vector")
	}
	if r.initialWeights != nil && len(r.initialWeights) != n {
		return gdregErrors.NewDimensionError("GDRegressor.Fit", n, len(r.initialWeights), 1)
	}

	r.state.Reset()

	var scaler *preprocessing.StandardScaler
	Xtrain := X
	if r.normalize {
		scaler = preprocessing.NewStandardScaler(preprocessing.WithZeroVariancePolicy(r.zeroVariance))
		if Xtrain, err = scaler.FitTransform(X); err != nil {
			return err
		}
	}

	w0 := mat.NewVecDense(n, nil)
	if r.initialWeights != nil {
		w0 = mat.NewVecDense(n, append([]float64(nil), r.initialWeights...))
	}

	opts := []DescentOption{WithLogger(r.logger)}
	if r.progress != nil {
		opts = append(opts, WithProgress(r.progress))
	}
	yVec := mat.NewVecDense(m, mat.Col(nil, 0, y))

	res, err := GradientDescent(Xtrain, yVec, w0, r.initialIntercept,
		ComputeCost, ComputeGradient, r.learningRate, r.maxIter, opts...)
	if err != nil {
		return err
	}

	r.scaler = scaler
	r.weights = res.W
	r.intercept = res.B
	r.costHistory = res.CostHistory
	r.state.SetFitted(n, m)

	fields := []any{
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
		log.SamplesKey, m,
		log.FeaturesKey, n,
	}
	if len(res.CostHistory) > 0 {
		fields = append(fields, log.LossKey, res.CostHistory[len(res.CostHistory)-1])
	}
	r.logger.Info("Training completed", fields...)

	return nil
}

// Predict returns X·w + b as an m×1 vector. X is given in the raw feature
// space; the fitted scaler, if any, is applied first.
func (r *GDRegressor) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer gdregErrors.Recover(&err, "GDRegressor.Predict")

	pred, err := r.predict("Predict", X)
	if err != nil {
		return nil, err
	}
	return pred, nil
}

func (r *GDRegressor) predict(method string, X mat.Matrix) (*mat.VecDense, error) {
	if err := r.state.RequireFitted(modelName, method); err != nil {
		return nil, err
	}
	m, n := X.Dims()
	if err := r.state.RequireFeatures("GDRegressor."+method, n); err != nil {
		return nil, err
	}

	Xin := X
	if r.scaler != nil {
		var err error
		if Xin, err = r.scaler.Transform(X); err != nil {
			return nil, err
		}
	}

	pred := mat.NewVecDense(m, nil)
	pred.MulVec(Xin, r.weights)
	for i := 0; i < m; i++ {
		pred.SetVec(i, pred.AtVec(i)+r.intercept)
	}

	r.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.SamplesKey, m,
	)
	return pred, nil
}

// Score returns the coefficient of determination R² of the predictions on X
// against y.
func (r *GDRegressor) Score(X, y mat.Matrix) (_ float64, err error) {
	defer gdregErrors.Recover(&err, "GDRegressor.Score")

	pred, err := r.predict("Score", X)
	if err != nil {
		return 0, err
	}
	m, _ := X.Dims()
	my, cy := y.Dims()
	if my != m {
		return 0, gdregErrors.NewDimensionError("GDRegressor.Score", m, my, 0)
	}
	if cy != 1 {
		return 0, gdregErrors.NewValueError("GDRegressor.Score", "y must be a column vector")
	}
	return metrics.R2Score(mat.NewVecDense(m, mat.Col(nil, 0, y)), pred)
}

// Coefficients returns a copy of the learned weights in the space the model
// was trained in (normalized when normalization is enabled). It returns nil
// before Fit.
func (r *GDRegressor) Coefficients() []float64 {
	if !r.state.IsFitted() {
		return nil
	}
	return mat.Col(nil, 0, r.weights)
}

// Intercept returns the learned bias, or 0 before Fit.
func (r *GDRegressor) Intercept() float64 {
	if !r.state.IsFitted() {
		return 0
	}
	return r.intercept
}

// CostHistory returns a copy of the per-iteration cost recorded by Fit.
func (r *GDRegressor) CostHistory() []float64 {
	return append([]float64(nil), r.costHistory...)
}

// Scaler returns the fitted scaler, or nil when normalization is disabled.
func (r *GDRegressor) Scaler() *preprocessing.StandardScaler {
	return r.scaler
}

// RawCoefficients folds the normalization into the weights so that
// y = X_raw·w + b holds for raw inputs:
//
//	w_raw[j] = w[j] / sigma[j]
//	b_raw    = b - Σ w[j]*mu[j]/sigma[j]
//
// Without normalization it returns the learned parameters unchanged.
func (r *GDRegressor) RawCoefficients() ([]float64, float64, error) {
	if err := r.state.RequireFitted(modelName, "RawCoefficients"); err != nil {
		return nil, 0, err
	}

	w := r.Coefficients()
	b := r.intercept
	if r.scaler == nil {
		return w, b, nil
	}
	for j := range w {
		w[j] /= r.scaler.Scale[j]
		b -= w[j] * r.scaler.Mean[j]
	}
	return w, b, nil
}

// ExportWeights returns a serializable snapshot of the fitted model.
func (r *GDRegressor) ExportWeights() (*model.ModelWeights, error) {
	if err := r.state.RequireFitted(modelName, "ExportWeights"); err != nil {
		return nil, err
	}

	_, nSamples := r.state.Dimensions()
	mw := &model.ModelWeights{
		ModelType:    modelName,
		Version:      model.WeightsVersion,
		Coefficients: r.Coefficients(),
		Intercept:    r.intercept,
		Hyperparameters: map[string]interface{}{
			"learning_rate": r.learningRate,
			"max_iter":      r.maxIter,
			"normalize":     r.normalize,
			"zero_variance": r.zeroVariance.String(),
		},
		Metadata: map[string]interface{}{
			"n_samples":  nSamples,
			"iterations": len(r.costHistory),
		},
		IsFitted: true,
	}
	if r.scaler != nil {
		mw.Mean = append([]float64(nil), r.scaler.Mean...)
		mw.Scale = append([]float64(nil), r.scaler.Scale...)
	}
	// JSON cannot encode NaN or Inf.
	if len(r.costHistory) > 0 {
		if last := r.costHistory[len(r.costHistory)-1]; gdregErrors.IsFinite(last) {
			mw.Metadata["final_cost"] = last
		}
	}
	return mw, nil
}

// ImportWeights restores a model exported by ExportWeights. The cost history
// is not part of the snapshot and is left empty.
func (r *GDRegressor) ImportWeights(mw *model.ModelWeights) error {
	if mw == nil {
		return gdregErrors.NewValueError("GDRegressor.ImportWeights", "nil weights")
	}
	if err := mw.Validate(); err != nil {
		return err
	}
	if mw.ModelType != modelName {
		return gdregErrors.NewValidationError("model_type", fmt.Sprintf("expected %s", modelName), mw.ModelType)
	}
	if !mw.IsFitted {
		return gdregErrors.NewNotFittedError(modelName, "ImportWeights")
	}

	var scaler *preprocessing.StandardScaler
	if len(mw.Mean) > 0 {
		var err error
		if scaler, err = preprocessing.NewStandardScalerFromStats(mw.Mean, mw.Scale); err != nil {
			return err
		}
	}

	if v, ok := mw.Hyperparameters["learning_rate"].(float64); ok {
		r.learningRate = v
	}
	if v, ok := toInt(mw.Hyperparameters["max_iter"]); ok {
		r.maxIter = v
	}
	r.normalize = scaler != nil
	if s, ok := mw.Hyperparameters["zero_variance"].(string); ok {
		if p, err := preprocessing.ParseZeroVariancePolicy(s); err == nil {
			r.zeroVariance = p
		}
	}

	nSamples, _ := toInt(mw.Metadata["n_samples"])

	r.scaler = scaler
	r.weights = mat.NewVecDense(len(mw.Coefficients), append([]float64(nil), mw.Coefficients...))
	r.intercept = mw.Intercept
	r.costHistory = nil
	r.state.SetFitted(len(mw.Coefficients), nSamples)
	return nil
}

// toInt accepts both int and the float64 produced by encoding/json.
func toInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
	}
	return 0, false
}

// String returns a short description of the model.
func (r *GDRegressor) String() string {
	return fmt.Sprintf("GDRegressor(learning_rate=%g, max_iter=%d, normalize=%t)",
		r.learningRate, r.maxIter, r.normalize)
}
