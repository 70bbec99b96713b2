package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsCSV = `Date,Team,Opponent,Team Location,Opponent Location,Team Differential,Opponent Differential,Team Score,Opponent Score
11/01/2015,Duke,UNC,Home,Away,3.5,1.0,80,70
11/01/2015,UNC,Duke,Away,Home,1.0,3.5,70,80
11/05/2015,UNC,Kansas,Home,Away,,2.0,75,75
11/09/2015,Kansas,Duke,Home,Away,2.0,10.0,60,90
11/12/2015,Duke,UNC,Away,Home,10.0,1.0,85,66
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--no-color", "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFeaturesTrainEvaluate(t *testing.T) {
	dir := t.TempDir()
	gamesPath := filepath.Join(dir, "games.csv")
	featuresPath := filepath.Join(dir, "features.csv")
	plotPath := filepath.Join(dir, "sweep.png")
	require.NoError(t, os.WriteFile(gamesPath, []byte(resultsCSV), 0o600))

	out, err := run(t, "features", "--games", gamesPath, "--out", featuresPath)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 4 games")

	out, err = run(t, "train", "--train", featuresPath)
	require.NoError(t, err)
	assert.Contains(t, out, "P(team_won)")
	assert.Contains(t, out, "P(wins_better | team_won)")
	assert.Contains(t, out, "training accuracy")
	assert.Contains(t, out, "threshold 0.50 on 4 games", "training confusion at the configured threshold")
	assert.Contains(t, out, "precision")

	t.Setenv("SCIBAYES_EVALUATION_PLOT_PATH", plotPath)
	out, err = run(t, "evaluate", "--train", featuresPath, "--test", featuresPath, "--threshold", "0.6")
	require.NoError(t, err)
	assert.Contains(t, out, "threshold 0.60 on 4 games")
	assert.Contains(t, out, "threshold sweep")
	assert.Contains(t, out, "auc")

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestEvaluateRejectsBadThreshold(t *testing.T) {
	_, err := run(t, "evaluate", "--threshold", "1.5")
	assert.Error(t, err)
}

func TestFeaturesNeedsPaths(t *testing.T) {
	_, err := run(t, "features", "--games", "", "--out", "")
	assert.Error(t, err)
}
