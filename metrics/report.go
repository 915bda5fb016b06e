package metrics

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Report bundles the regression metrics printed after training.
type Report struct {
	MSE  float64
	RMSE float64
	MAE  float64
	// R2 is NaN when yTrue has no variance.
	R2 float64
}

// Evaluate computes every regression metric for one prediction vector.
func Evaluate(yTrue, yPred *mat.VecDense) (Report, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		r2 = math.NaN()
	}
	return Report{MSE: mse, RMSE: math.Sqrt(mse), MAE: mae, R2: r2}, nil
}

// String formats the report on one line.
func (r Report) String() string {
	return fmt.Sprintf("MSE=%.4f RMSE=%.4f MAE=%.4f R2=%.4f", r.MSE, r.RMSE, r.MAE, r.R2)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("mse", r.MSE).
		Float64("rmse", r.RMSE).
		Float64("mae", r.MAE).
		Float64("r2", r.R2)
}
