package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

func TestHousing(t *testing.T) {
	X, y := Housing()
	r, c := X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, 3, y.Len())
	assert.Len(t, HousingFeatures, c)
	assert.Equal(t, 852.0, X.At(2, 0))
	assert.Equal(t, 178.0, y.AtVec(2))
}

func TestFromRows(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	X, y, err := FromRows(rows, []float64{5, 6})
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), X))
	assert.Equal(t, 6.0, y.AtVec(1))

	rows[0][0] = 100
	assert.Equal(t, 1.0, X.At(0, 0), "rows are copied")
}

func TestFromRowsErrors(t *testing.T) {
	_, _, err := FromRows(nil, nil)
	assert.True(t, gdregErrors.Is(err, gdregErrors.ErrEmptyData))

	_, _, err = FromRows([][]float64{{1, 2}, {3}}, []float64{1, 2})
	var dim *gdregErrors.DimensionError
	require.True(t, gdregErrors.As(err, &dim))
	assert.Equal(t, 1, dim.Axis)
	assert.Contains(t, err.Error(), "row 1")

	_, _, err = FromRows([][]float64{{1}, {2}}, []float64{1})
	require.True(t, gdregErrors.As(err, &dim))
	assert.Equal(t, 0, dim.Axis)
}

func TestLoadCSV(t *testing.T) {
	in := `size,bedrooms,floors,age,price
2104, 5, 1, 45, 460

1416, 3, 2, 40, 232
852, 2, 1, 35, 178
`
	table, err := LoadCSV(strings.NewReader(in), true)
	require.NoError(t, err)

	X, y := Housing()
	assert.True(t, mat.Equal(X, table.X))
	assert.True(t, mat.Equal(y, table.Y))
	assert.Equal(t, []string{"size", "bedrooms", "floors", "age"}, table.Features)
	assert.Equal(t, "price", table.Target)
}

func TestLoadCSVNoHeader(t *testing.T) {
	table, err := LoadCSV(strings.NewReader("1,2,3\n4,5,6\n"), false)
	require.NoError(t, err)
	assert.Equal(t, []string{"x0", "x1"}, table.Features)
	assert.Equal(t, "y", table.Target)
	assert.Equal(t, 6.0, table.Y.AtVec(1))
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		header bool
	}{
		{"not a number", "1,abc,3\n", false},
		{"nan", "1,NaN,3\n", false},
		{"infinite target", "1,2,+Inf\n", false},
		{"single column", "1\n2\n", false},
		{"ragged", "1,2,3\n4,5\n", false},
		{"empty", "", false},
		{"header only", "a,b\n", true},
		{"header width", "a,b\n1,2,3\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.in), tt.header)
			assert.Error(t, err)
		})
	}
}
