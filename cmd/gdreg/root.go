package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/gdreg/dataset"
	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
	"github.com/YuminosukeSato/gdreg/pkg/log"
)

func newRootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:   "gdreg",
		Short: "Multivariate linear regression trained with batch gradient descent",
		Long: `gdreg fits y = X·w + b by batch gradient descent on the squared-error
cost, optionally z-score normalizing the features first, and reports the
cost history and the final regression metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.SetupLogger(cmd.ErrOrStderr(), logLevel, logFormat)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", log.FormatConsole, "Log format (console, json)")

	rootCmd.AddCommand(newTrainCmd(), newCostCmd(), newPredictCmd(), newVersionCmd())
	return rootCmd
}

// loadData reads a CSV file when path is set and falls back to the built-in
// housing example otherwise.
func loadData(path string, hasHeader bool) (*dataset.Table, error) {
	if path == "" {
		X, y := dataset.Housing()
		return &dataset.Table{X: X, Y: y, Features: dataset.HousingFeatures, Target: "price"}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, gdregErrors.Wrap(err, "open data file")
	}
	defer f.Close()
	return dataset.LoadCSV(f, hasHeader)
}
