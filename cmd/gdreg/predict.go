package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gdreg/core/model"
	"github.com/YuminosukeSato/gdreg/linear"
	"github.com/YuminosukeSato/gdreg/metrics"
	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
)

func newPredictCmd() *cobra.Command {
	var (
		weightsPath string
		dataPath    string
		hasHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict with weights written by train --weights-out",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(weightsPath)
			if err != nil {
				return gdregErrors.Wrap(err, "open weights file")
			}
			mw, err := model.ReadWeights(f)
			f.Close()
			if err != nil {
				return err
			}

			reg := linear.NewGDRegressor()
			if err := reg.ImportWeights(mw); err != nil {
				return err
			}

			table, err := loadData(dataPath, hasHeader)
			if err != nil {
				return err
			}
			pred, err := reg.Predict(table.X)
			if err != nil {
				return err
			}

			m, _ := table.X.Dims()
			out := cmd.OutOrStdout()
			for i := 0; i < m; i++ {
				fmt.Fprintf(out, "%.4f\n", pred.At(i, 0))
			}

			mse, err := metrics.MSEMatrix(table.Y, pred)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Mean Squared Error (MSE) : %.2f\n", mse)
			return nil
		},
	}

	cmd.Flags().StringVar(&weightsPath, "weights", "", "Weights JSON file (required)")
	cmd.Flags().StringVar(&dataPath, "data", "", "CSV file; last column is the target (default: built-in housing data)")
	cmd.Flags().BoolVar(&hasHeader, "header", true, "CSV file has a header row")
	_ = cmd.MarkFlagRequired("weights")
	return cmd
}
