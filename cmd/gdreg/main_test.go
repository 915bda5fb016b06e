package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gdregErrors "github.com/YuminosukeSato/gdreg/pkg/errors"
	"github.com/YuminosukeSato/gdreg/pkg/log"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	prev := log.GetLogger()
	t.Cleanup(func() {
		log.SetLogger(prev)
		gdregErrors.SetZerologWarnFunc(nil)
	})

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gdreg version "+version)
}

func TestCostCommand(t *testing.T) {
	out, _, err := execute(t, "cost", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "cost at w=0, b=0: 49518.0000")
	assert.Contains(t, out, "dj_db: -290")
}

func TestCostCommandCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n2,4\n"), 0o600))

	out, _, err := execute(t, "cost", "--data", path, "--b", "1", "--log-level", "error")
	require.NoError(t, err)
	// residuals {-1, -3}: (1 + 9) / 4
	assert.Contains(t, out, "cost at w=0, b=1: 2.5000")
}

func TestTrainAndPredict(t *testing.T) {
	dir := t.TempDir()
	plotPath := filepath.Join(dir, "cost.svg")
	weightsPath := filepath.Join(dir, "weights.json")

	out, stderr, err := execute(t, "train",
		"--plot", plotPath,
		"--weights-out", weightsPath,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "X_mu = ")
	assert.Contains(t, out, "Peak to Peak range by column in Normalized X")
	assert.Contains(t, out, "final b: 290.0000")
	assert.Contains(t, out, "Mean Squared Error (MSE) : 0.00")
	assert.Contains(t, out, "prediction: 460.00, target value: 460.00")

	// ceil(1000/10) cadence: iterations 0, 100, ..., 900
	assert.Equal(t, 10, strings.Count(stderr, "Iteration "))
	assert.Contains(t, stderr, "Iteration  900 : cost : ")

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	out, _, err = execute(t, "predict", "--weights", weightsPath, "--log-level", "error")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "460.0000", lines[0])
	assert.Equal(t, "232.0000", lines[1])
	assert.Equal(t, "178.0000", lines[2])
	assert.Equal(t, "Mean Squared Error (MSE) : 0.00", lines[3])
}

func TestTrainRejectsConstantFeature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "const.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,y\n1,5,1\n2,5,2\n3,5,3\n"), 0o600))

	_, _, err := execute(t, "train", "--data", path, "--log-level", "error")
	require.Error(t, err)
	assert.True(t, gdregErrors.Is(err, gdregErrors.ErrZeroVariance))

	out, _, err := execute(t, "train", "--data", path, "--zero-variance", "unscaled", "--iters", "50", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "final w: ")
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "train", "--log-format", "xml")
	assert.Error(t, err)

	_, _, err = execute(t, "train", "--zero-variance", "ignore", "--log-level", "error")
	assert.Error(t, err)

	_, _, err = execute(t, "predict", "--log-level", "error")
	assert.Error(t, err, "--weights is required")
}

func TestMissingFilesAreWrapped(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, _, err := execute(t, "cost", "--data", missing+".csv", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open data file")
	assert.True(t, gdregErrors.Is(err, fs.ErrNotExist))
	assert.Contains(t, fmt.Sprintf("%+v", err), "loadData", "stack trace is attached")

	_, _, err = execute(t, "predict", "--weights", missing+".json", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open weights file")
	assert.True(t, gdregErrors.Is(err, fs.ErrNotExist))
}
