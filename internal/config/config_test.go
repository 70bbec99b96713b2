package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scibayes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), withEmptyFeatures(cfg))
}

// viper decodes the empty default list as an empty slice, not nil.
func withEmptyFeatures(cfg *Config) *Config {
	if len(cfg.Model.Features) == 0 {
		cfg.Model.Features = nil
	}
	return cfg
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
data:
  games_path: games.csv
  stat_vars: [Score, Rebounds]
model:
  features: [at_home, wins_better]
  class_prior_count: 0
  log_space: true
evaluation:
  threshold: 0.7
  plot_path: sweep.png
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "games.csv", cfg.Data.GamesPath)
	assert.Equal(t, []string{"Score", "Rebounds"}, cfg.Data.StatVars)
	assert.Equal(t, []string{"at_home", "wins_better"}, cfg.Model.Features)
	assert.Equal(t, "team_won", cfg.Model.ClassKey, "default kept")
	assert.Zero(t, cfg.Model.ClassPriorCount)
	assert.Equal(t, 1.0, cfg.Model.FeaturePosteriorCount)
	assert.True(t, cfg.Model.LogSpace)
	assert.Equal(t, 0.7, cfg.Evaluation.Threshold)
	assert.Equal(t, 20, cfg.Evaluation.SweepSteps)
	assert.Equal(t, "sweep.png", cfg.Evaluation.PlotPath)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "evaluation:\n  threshold: 0.7\n")
	t.Setenv("SCIBAYES_EVALUATION_THRESHOLD", "0.25")
	t.Setenv("SCIBAYES_MODEL_CLASS_KEY", "won")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Evaluation.Threshold)
	assert.Equal(t, "won", cfg.Model.ClassKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		key  string
	}{
		{"log level", "log_level: loud\n", "log_level"},
		{"negative prior count", "model:\n  class_prior_count: -1\n", "model.class_prior_count"},
		{"negative posterior count", "model:\n  feature_posterior_count: -0.5\n", "model.feature_posterior_count"},
		{"threshold above one", "evaluation:\n  threshold: 1.5\n", "evaluation.threshold"},
		{"threshold below zero", "evaluation:\n  threshold: -0.1\n", "evaluation.threshold"},
		{"no sweep steps", "evaluation:\n  sweep_steps: 0\n", "evaluation.sweep_steps"},
		{"empty class key", "model:\n  class_key: \"\"\n", "model.class_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)

			var valErr *errors.ValidationError
			require.True(t, errors.As(err, &valErr), "got %v", err)
			assert.Equal(t, tt.key, valErr.ParamName)
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	cfg := Default()
	cfg.Evaluation.Threshold = 0
	assert.NoError(t, Validate(cfg))
	cfg.Evaluation.Threshold = 1
	assert.NoError(t, Validate(cfg))

	cfg.Model.ClassPriorCount = 0
	cfg.Model.FeaturePosteriorCount = 0
	assert.NoError(t, Validate(cfg))
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, "model.class_prior_count", keyOf("Config.Model.ClassPriorCount"))
	assert.Equal(t, "log_level", keyOf("Config.LogLevel"))
}
