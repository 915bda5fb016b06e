// Package log defines standard attribute keys for training operations.
//
// Keys follow a hierarchical naming convention ("model.name",
// "data.samples") so that log streams from different components can be
// filtered uniformly.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "GDRegressor", "StandardScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score", "gradient_descent"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "linear", "preprocessing", "cmd"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of rows (m) in the design matrix.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns (n) in the design matrix.
	FeaturesKey = "data.features"
)

// Training progress and metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LossKey records the cost value during training or evaluation.
	LossKey = "metrics.loss"

	// MSEKey records the mean squared error on evaluation data.
	MSEKey = "metrics.mse"

	// R2ScoreKey records the R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// IterationKey records the current iteration number.
	IterationKey = "training.iteration"

	// IterationsKey records the total number of iterations requested.
	IterationsKey = "training.iterations"
)

// Error context.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters.
const (
	// LearningRateKey records the gradient-descent step size.
	LearningRateKey = "hyperparams.learning_rate"

	// NormalizeKey records whether z-score normalization was applied.
	NormalizeKey = "hyperparams.normalize"
)

// Standard attribute values.
const (
	OperationFit             = "fit"
	OperationPredict         = "predict"
	OperationTransform       = "transform"
	OperationScore           = "score"
	OperationGradientDescent = "gradient_descent"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorZeroVariance      = "ZERO_VARIANCE"
	ErrorDivergence        = "DIVERGENCE"
)
