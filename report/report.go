// Package report renders training diagnostics with gonum/plot.
package report

import (
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

// Default canvas size for rendered charts.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// CostHistoryPlot builds a line chart of cost against iteration. NaN and Inf
// entries are skipped.
func CostHistoryPlot(history []float64) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, gdregErrors.NewValueError("report.CostHistoryPlot", "empty cost history")
	}

	pts := make(plotter.XYs, 0, len(history))
	for i, c := range history {
		if !gdregErrors.IsFinite(c) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: c})
	}
	if len(pts) == 0 {
		return nil, gdregErrors.NewValueError("report.CostHistoryPlot", "cost history has no finite values")
	}

	p := plot.New()
	p.Title.Text = "Cost vs. iteration"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "cost"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, gdregErrors.Wrap(err, "report.CostHistoryPlot")
	}
	p.Add(line)
	return p, nil
}

// WriteCostHistory renders the chart to w in the given format ("png", "svg",
// "pdf", ...).
func WriteCostHistory(w io.Writer, history []float64, format string) error {
	p, err := CostHistoryPlot(history)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, strings.ToLower(format))
	if err != nil {
		return gdregErrors.Wrapf(err, "report: render %s", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return gdregErrors.Wrap(err, "report: write chart")
	}
	return nil
}

// SaveCostHistory renders the chart to path; the extension selects the format.
func SaveCostHistory(history []float64, path string) error {
	if filepath.Ext(path) == "" {
		return gdregErrors.NewValidationError("path", "must have an image extension such as .png or .svg", path)
	}
	p, err := CostHistoryPlot(history)
	if err != nil {
		return err
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return gdregErrors.Wrapf(err, "report: save %s", path)
	}
	return nil
}
