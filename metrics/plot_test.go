package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scibayes/core/discrete"
)

func TestPlotThresholdCurve(t *testing.T) {
	captureWarnings(t)
	testset := discrete.Dataset{scoredRecord(90, 1), scoredRecord(60, 0), scoredRecord(40, 1), scoredRecord(10, 0)}
	sweep, err := ThresholdSweep(readScore, Thresholds(10), testset, "team_won")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "threshold.png")
	require.NoError(t, PlotThresholdCurve(sweep, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestThresholdCurveEmpty(t *testing.T) {
	_, err := ThresholdCurve(nil)
	assert.Error(t, err)
}
