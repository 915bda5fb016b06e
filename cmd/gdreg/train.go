package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdreg/linear"
	"github.com/YuminosukeSato/gdreg/metrics"
	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
	"github.com/YuminosukeSato/gdreg/pkg/log"
	"github.com/YuminosukeSato/gdreg/preprocessing"
	"github.com/YuminosukeSato/gdreg/report"
)

type trainOptions struct {
	dataPath     string
	hasHeader    bool
	alpha        float64
	iters        int
	normalize    bool
	zeroVariance string
	plotPath     string
	weightsOut   string
}

func newTrainCmd() *cobra.Command {
	opts := &trainOptions{}

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a linear model with batch gradient descent",
		Long: `Trains y = X·w + b with batch gradient descent and prints the
normalization statistics, the learned parameters and the regression metrics
on the raw training data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataPath, "data", "", "CSV file; last column is the target (default: built-in housing data)")
	cmd.Flags().BoolVar(&opts.hasHeader, "header", true, "CSV file has a header row")
	cmd.Flags().Float64Var(&opts.alpha, "alpha", 0.1, "Learning rate")
	cmd.Flags().IntVar(&opts.iters, "iters", 1000, "Number of gradient descent iterations")
	cmd.Flags().BoolVar(&opts.normalize, "normalize", true, "Z-score normalize features before training")
	cmd.Flags().StringVar(&opts.zeroVariance, "zero-variance", "error", "Constant feature handling (error, unscaled)")
	cmd.Flags().StringVar(&opts.plotPath, "plot", "", "Write the cost history chart to this file (.png, .svg, .pdf)")
	cmd.Flags().StringVar(&opts.weightsOut, "weights-out", "", "Write the fitted weights as JSON to this file")
	return cmd
}

func runTrain(out io.Writer, opts *trainOptions) error {
	logger := log.GetLoggerWithName("cmd.train")

	policy, err := preprocessing.ParseZeroVariancePolicy(opts.zeroVariance)
	if err != nil {
		return err
	}
	table, err := loadData(opts.dataPath, opts.hasHeader)
	if err != nil {
		return err
	}
	m, n := table.X.Dims()
	logger.Info("Loaded data", log.SamplesKey, m, log.FeaturesKey, n)

	fmt.Fprintf(out, "features: %v, target: %s\n", table.Features, table.Target)
	fmt.Fprintf(out, "Peak to Peak range by column in Raw        X: %.2f\n", preprocessing.PeakToPeak(table.X))
	if opts.normalize {
		scaler := preprocessing.NewStandardScaler(preprocessing.WithZeroVariancePolicy(policy))
		xNorm, err := scaler.FitTransform(table.X)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "X_mu = %.4f\nX_sigma = %.4f\n", scaler.Mean, scaler.Scale)
		fmt.Fprintf(out, "Peak to Peak range by column in Normalized X: %.2f\n", preprocessing.PeakToPeak(xNorm))
	}

	reg := linear.NewGDRegressor(
		linear.WithLearningRate(opts.alpha),
		linear.WithIterations(opts.iters),
		linear.WithNormalize(opts.normalize),
		linear.WithZeroVariance(policy),
	)
	y := mat.NewDense(m, 1, mat.Col(nil, 0, table.Y))
	if err := reg.Fit(table.X, y); err != nil {
		return err
	}

	fmt.Fprintf(out, "final w: %.4f, final b: %.4f\n", reg.Coefficients(), reg.Intercept())
	if opts.normalize {
		wRaw, bRaw, err := reg.RawCoefficients()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "raw-space w: %.6f, raw-space b: %.4f\n", wRaw, bRaw)
	}

	pred, err := reg.Predict(table.X)
	if err != nil {
		return err
	}
	yPred := mat.NewVecDense(m, mat.Col(nil, 0, pred))
	for i := 0; i < m && i < 10; i++ {
		fmt.Fprintf(out, "prediction: %0.2f, target value: %0.2f\n", yPred.AtVec(i), table.Y.AtVec(i))
	}

	rep, err := metrics.Evaluate(table.Y, yPred)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Mean Squared Error (MSE) : %.2f\n", rep.MSE)
	fmt.Fprintf(out, "%s\n", rep)
	logger.Info("Training finished",
		log.MSEKey, rep.MSE,
		log.R2ScoreKey, rep.R2,
	)

	if opts.plotPath != "" {
		if err := report.SaveCostHistory(reg.CostHistory(), opts.plotPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "cost history written to %s\n", opts.plotPath)
	}

	if opts.weightsOut != "" {
		if err := writeWeights(reg, opts.weightsOut); err != nil {
			return err
		}
		fmt.Fprintf(out, "weights written to %s\n", opts.weightsOut)
	}
	return nil
}

func writeWeights(reg *linear.GDRegressor, path string) (err error) {
	mw, err := reg.ExportWeights()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return gdregErrors.Wrap(err, "create weights file")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return mw.WriteJSON(f)
}
