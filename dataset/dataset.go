// Package dataset builds design matrices and targets for training.
package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

// HousingFeatures names the columns of Housing.
var HousingFeatures = []string{"size(sqft)", "bedrooms", "floors", "age"}

// Housing returns the three-house example: size, bedrooms, floors and age
// against price in thousands of dollars.
func Housing() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(3, 4, []float64{
		2104, 5, 1, 45,
		1416, 3, 2, 40,
		852, 2, 1, 35,
	})
	y := mat.NewVecDense(3, []float64{460, 232, 178})
	return X, y
}

// FromRows copies rows and targets into gonum types. Every row must have the
// same non-zero length and there must be one target per row.
func FromRows(rows [][]float64, targets []float64) (*mat.Dense, *mat.VecDense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, nil, gdregErrors.NewModelError("dataset.FromRows", "empty data", gdregErrors.ErrEmptyData)
	}
	if len(targets) != len(rows) {
		return nil, nil, gdregErrors.NewDimensionError("dataset.FromRows", len(rows), len(targets), 0)
	}

	n := len(rows[0])
	data := make([]float64, 0, len(rows)*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, nil, gdregErrors.Wrapf(
				gdregErrors.NewDimensionError("dataset.FromRows", n, len(row), 1), "row %d", i)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(rows), n, data), mat.NewVecDense(len(targets), append([]float64(nil), targets...)), nil
}

// Table is a parsed numeric CSV file.
type Table struct {
	X *mat.Dense
	Y *mat.VecDense
	// Features holds the header names of the feature columns, or generated
	// names x0, x1, ... when the file has no header.
	Features []string
	Target   string
}

// LoadCSV reads a numeric CSV where the last column is the target and the
// others are features. Blank lines are skipped and fields are trimmed.
func LoadCSV(r io.Reader, hasHeader bool) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var (
		header  []string
		rows    [][]float64
		targets []float64
		line    int
	)
	for {
		record, err := reader.Read()
		if gdregErrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, gdregErrors.Wrap(err, "dataset.LoadCSV")
		}
		line++

		if hasHeader && header == nil {
			header = record
			continue
		}
		if len(record) < 2 {
			return nil, gdregErrors.NewValueError("dataset.LoadCSV",
				"line "+strconv.Itoa(line)+": need at least one feature and a target")
		}

		values := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, gdregErrors.Wrapf(err, "dataset.LoadCSV: line %d column %d", line, j+1)
			}
			if err := gdregErrors.CheckScalar("dataset.LoadCSV", v, -1); err != nil {
				return nil, gdregErrors.Wrapf(err, "line %d column %d", line, j+1)
			}
			values[j] = v
		}
		rows = append(rows, values[:len(values)-1])
		targets = append(targets, values[len(values)-1])
	}

	X, y, err := FromRows(rows, targets)
	if err != nil {
		return nil, err
	}

	_, n := X.Dims()
	t := &Table{X: X, Y: y}
	if header != nil {
		if len(header) != n+1 {
			return nil, gdregErrors.NewDimensionError("dataset.LoadCSV header", n+1, len(header), 1)
		}
		t.Features = header[:n]
		t.Target = header[n]
	} else {
		t.Features = make([]string, n)
		for j := range t.Features {
			t.Features[j] = "x" + strconv.Itoa(j)
		}
		t.Target = "y"
	}
	return t, nil
}
