package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gdreg/linear"
)

func newCostCmd() *cobra.Command {
	var (
		dataPath  string
		hasHeader bool
		bias      float64
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Evaluate the cost and gradient at w = 0",
		Long: `Evaluates the squared-error cost and its gradient on the raw features
with all weights set to zero and the given bias. Useful as a sanity check
before training.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadData(dataPath, hasHeader)
			if err != nil {
				return err
			}

			_, n := table.X.Dims()
			w := mat.NewVecDense(n, nil)

			cost, err := linear.ComputeCost(table.X, table.Y, w, bias)
			if err != nil {
				return err
			}
			djdw, djdb, err := linear.ComputeGradient(table.X, table.Y, w, bias)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cost at w=0, b=%g: %.4f\n", bias, cost)
			fmt.Fprintf(out, "dj_dw: %v\n", mat.Col(nil, 0, djdw))
			fmt.Fprintf(out, "dj_db: %g\n", djdb)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "CSV file; last column is the target (default: built-in housing data)")
	cmd.Flags().BoolVar(&hasHeader, "header", true, "CSV file has a header row")
	cmd.Flags().Float64Var(&bias, "b", 0, "Bias to evaluate at")
	return cmd
}
