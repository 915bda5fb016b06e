package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

type vecCase struct {
	name    string
	yTrue   *mat.VecDense
	yPred   *mat.VecDense
	want    float64
	wantErr bool
}

func runVecCases(t *testing.T, fn func(yTrue, yPred *mat.VecDense) (float64, error), tests []vecCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fn(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMSE(t *testing.T) {
	runVecCases(t, MSE, []vecCase{
		{
			name:  "perfect prediction",
			yTrue: mat.NewVecDense(5, []float64{1, 2, 3, 4, 5}),
			yPred: mat.NewVecDense(5, []float64{1, 2, 3, 4, 5}),
			want:  0,
		},
		{
			name:  "symmetric errors",
			yTrue: mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred: mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:  0.25,
		},
		{
			// twice the cost at w=0, b=0 because cost divides by 2m
			name:  "housing zero model",
			yTrue: mat.NewVecDense(3, []float64{460, 232, 178}),
			yPred: mat.NewVecDense(3, nil),
			want:  99036,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1, 2, 3}),
			yPred:   mat.NewVecDense(2, []float64{1, 2}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
		{
			name:    "nil prediction",
			yTrue:   mat.NewVecDense(1, []float64{1}),
			wantErr: true,
		},
	})
}

func TestMSEErrorTypes(t *testing.T) {
	_, err := MSE(mat.NewVecDense(3, nil), mat.NewVecDense(2, nil))
	var dim *gdregErrors.DimensionError
	require.True(t, gdregErrors.As(err, &dim))
	assert.Equal(t, 3, dim.Expected)
	assert.Equal(t, 2, dim.Got)

	_, err = MSE(&mat.VecDense{}, &mat.VecDense{})
	var ve *gdregErrors.ValueError
	assert.True(t, gdregErrors.As(err, &ve))
}

func TestMSEMatrix(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   mat.Matrix
		yPred   mat.Matrix
		want    float64
		wantErr bool
	}{
		{
			name:  "single column",
			yTrue: mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
			yPred: mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5}),
			want:  0.25,
		},
		{
			name:  "vector and matrix mixed",
			yTrue: mat.NewVecDense(2, []float64{1, 3}),
			yPred: mat.NewDense(2, 1, []float64{2, 1}),
			want:  2.5,
		},
		{
			name:    "multiple columns",
			yTrue:   mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			yPred:   mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
			wantErr: true,
		},
		{
			name:    "row mismatch",
			yTrue:   mat.NewDense(3, 1, nil),
			yPred:   mat.NewDense(2, 1, nil),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSEMatrix(tt.yTrue, tt.yPred)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestRMSE(t *testing.T) {
	runVecCases(t, RMSE, []vecCase{
		{
			name:  "unit offset",
			yTrue: mat.NewVecDense(4, nil),
			yPred: mat.NewVecDense(4, []float64{1, 1, 1, 1}),
			want:  1,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, nil),
			yPred:   mat.NewVecDense(2, nil),
			wantErr: true,
		},
	})
}

func TestMAE(t *testing.T) {
	runVecCases(t, MAE, []vecCase{
		{
			name:  "perfect prediction",
			yTrue: mat.NewVecDense(3, []float64{1, 2, 3}),
			yPred: mat.NewVecDense(3, []float64{1, 2, 3}),
			want:  0,
		},
		{
			name:  "mixed sign differences",
			yTrue: mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred: mat.NewVecDense(4, []float64{2, 1, 4, 3}),
			want:  1,
		},
		{
			name:    "empty",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	})
}

func TestR2Score(t *testing.T) {
	runVecCases(t, R2Score, []vecCase{
		{
			name:  "perfect prediction",
			yTrue: mat.NewVecDense(5, []float64{1, 2, 3, 4, 5}),
			yPred: mat.NewVecDense(5, []float64{1, 2, 3, 4, 5}),
			want:  1,
		},
		{
			name:  "worse than mean baseline",
			yTrue: mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred: mat.NewVecDense(4, []float64{4, 3, 2, 1}),
			want:  -3,
		},
		{
			name:    "no variance in yTrue",
			yTrue:   mat.NewVecDense(3, []float64{3, 3, 3}),
			yPred:   mat.NewVecDense(3, []float64{2, 3, 4}),
			wantErr: true,
		},
	})
}

func TestEvaluate(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	r, err := Evaluate(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, r.MSE, 1e-12)
	assert.InDelta(t, 0.5, r.RMSE, 1e-12)
	assert.InDelta(t, 0.5, r.MAE, 1e-12)
	assert.InDelta(t, 0.8, r.R2, 1e-12)
	assert.Contains(t, r.String(), "MSE=0.2500")

	r, err = Evaluate(mat.NewVecDense(2, []float64{1, 1}), mat.NewVecDense(2, []float64{1, 2}))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(r.R2))

	_, err = Evaluate(mat.NewVecDense(2, nil), mat.NewVecDense(3, nil))
	assert.Error(t, err)
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
