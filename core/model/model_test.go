package model

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("GDRegressor", "Predict")
	var nf *gdregErrors.NotFittedError
	require.True(t, gdregErrors.As(err, &nf))
	assert.Equal(t, "Predict", nf.Method)

	s.SetFitted(4, 3)
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("GDRegressor", "Predict"))

	nFeatures, nSamples := s.Dimensions()
	assert.Equal(t, 4, nFeatures)
	assert.Equal(t, 3, nSamples)

	assert.NoError(t, s.RequireFeatures("Predict", 4))
	var dim *gdregErrors.DimensionError
	require.True(t, gdregErrors.As(s.RequireFeatures("Predict", 2), &dim))
	assert.Equal(t, 1, dim.Axis)

	s.Reset()
	assert.False(t, s.IsFitted())
}

func sampleWeights() *ModelWeights {
	return &ModelWeights{
		ModelType:       "GDRegressor",
		Version:         WeightsVersion,
		Coefficients:    []float64{1.5, -2},
		Intercept:       0.25,
		Mean:            []float64{10, 20},
		Scale:           []float64{2, 4},
		Hyperparameters: map[string]interface{}{"learning_rate": 0.1},
		Metadata:        map[string]interface{}{"final_cost": 12.5},
		IsFitted:        true,
	}
}

func TestModelWeightsJSONRoundTrip(t *testing.T) {
	mw := sampleWeights()

	var buf bytes.Buffer
	require.NoError(t, mw.WriteJSON(&buf))

	got, err := ReadWeights(&buf)
	require.NoError(t, err)
	assert.Equal(t, mw.Coefficients, got.Coefficients)
	assert.Equal(t, mw.Mean, got.Mean)
	assert.Equal(t, mw.Scale, got.Scale)
	assert.Equal(t, mw.Intercept, got.Intercept)
	assert.Equal(t, 0.1, got.Hyperparameters["learning_rate"])
}

func TestModelWeightsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ModelWeights)
	}{
		{"missing type", func(mw *ModelWeights) { mw.ModelType = "" }},
		{"missing version", func(mw *ModelWeights) { mw.Version = "" }},
		{"unfitted with coefficients", func(mw *ModelWeights) { mw.IsFitted = false }},
		{"fitted without coefficients", func(mw *ModelWeights) {
			mw.Coefficients = nil
			mw.Mean, mw.Scale = nil, nil
		}},
		{"mean scale mismatch", func(mw *ModelWeights) { mw.Scale = []float64{1} }},
		{"stats width mismatch", func(mw *ModelWeights) {
			mw.Mean = []float64{1, 2, 3}
			mw.Scale = []float64{1, 1, 1}
		}},
		{"zero scale", func(mw *ModelWeights) { mw.Scale = []float64{1, 0} }},
		{"nan coefficient", func(mw *ModelWeights) { mw.Coefficients[1] = math.NaN() }},
		{"infinite intercept", func(mw *ModelWeights) { mw.Intercept = math.Inf(-1) }},
	}

	assert.NoError(t, sampleWeights().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := sampleWeights()
			tt.mutate(mw)
			assert.Error(t, mw.Validate())
		})
	}
}

func TestModelWeightsToJSONRejectsDiverged(t *testing.T) {
	mw := sampleWeights()
	mw.Coefficients[0] = math.Inf(1)

	_, err := mw.ToJSON()
	var numErr *gdregErrors.NumericalInstabilityError
	require.True(t, gdregErrors.As(err, &numErr), "got %v", err)
	assert.NotContains(t, err.Error(), "iteration")

	var buf bytes.Buffer
	assert.Error(t, mw.WriteJSON(&buf))
	assert.Zero(t, buf.Len())
}

func TestModelWeightsCloneIsDeep(t *testing.T) {
	mw := sampleWeights()
	clone := mw.Clone()

	clone.Coefficients[0] = 99
	clone.Mean[0] = 99
	clone.Hyperparameters["learning_rate"] = 1.0

	assert.Equal(t, 1.5, mw.Coefficients[0])
	assert.Equal(t, 10.0, mw.Mean[0])
	assert.Equal(t, 0.1, mw.Hyperparameters["learning_rate"])
}
