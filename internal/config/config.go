// Package config loads the settings of a scibayes run.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML file and SCIBAYES_* environment variables (dots become underscores,
// so SCIBAYES_MODEL_LOG_SPACE sets model.log_space).
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "SCIBAYES"

// Config is the complete run configuration.
type Config struct {
	LogLevel   string           `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Data       DataConfig       `mapstructure:"data"`
	Model      ModelConfig      `mapstructure:"model"`
	Evaluation EvaluationConfig `mapstructure:"evaluation"`
}

// DataConfig locates the input and output CSV files.
type DataConfig struct {
	GamesPath    string   `mapstructure:"games_path"`
	FeaturesPath string   `mapstructure:"features_path"`
	TrainPath    string   `mapstructure:"train_path"`
	TestPath     string   `mapstructure:"test_path"`
	StatVars     []string `mapstructure:"stat_vars" validate:"min=1,dive,required"`
}

// ModelConfig holds the classifier settings. An empty Features list means
// every variable except ClassKey.
type ModelConfig struct {
	ClassKey              string   `mapstructure:"class_key" validate:"required"`
	Features              []string `mapstructure:"features" validate:"dive,required"`
	ClassPriorCount       float64  `mapstructure:"class_prior_count" validate:"gte=0"`
	FeaturePosteriorCount float64  `mapstructure:"feature_posterior_count" validate:"gte=0"`
	LogSpace              bool     `mapstructure:"log_space"`
}

// EvaluationConfig controls threshold evaluation and the sweep plot.
type EvaluationConfig struct {
	Threshold  float64 `mapstructure:"threshold" validate:"gte=0,lte=1"`
	SweepSteps int     `mapstructure:"sweep_steps" validate:"gte=1,lte=10000"`
	PlotPath   string  `mapstructure:"plot_path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Data: DataConfig{
			StatVars: []string{"Score"},
		},
		Model: ModelConfig{
			ClassKey:              "team_won",
			ClassPriorCount:       1,
			FeaturePosteriorCount: 1,
		},
		Evaluation: EvaluationConfig{
			Threshold:  0.5,
			SweepSteps: 20,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("data.games_path", d.Data.GamesPath)
	v.SetDefault("data.features_path", d.Data.FeaturesPath)
	v.SetDefault("data.train_path", d.Data.TrainPath)
	v.SetDefault("data.test_path", d.Data.TestPath)
	v.SetDefault("data.stat_vars", d.Data.StatVars)
	v.SetDefault("model.class_key", d.Model.ClassKey)
	v.SetDefault("model.features", []string{})
	v.SetDefault("model.class_prior_count", d.Model.ClassPriorCount)
	v.SetDefault("model.feature_posterior_count", d.Model.FeaturePosteriorCount)
	v.SetDefault("model.log_space", d.Model.LogSpace)
	v.SetDefault("evaluation.threshold", d.Evaluation.Threshold)
	v.SetDefault("evaluation.sweep_steps", d.Evaluation.SweepSteps)
	v.SetDefault("evaluation.plot_path", d.Evaluation.PlotPath)
}

// Load builds a validated Config. path may be empty, in which case only
// defaults and the environment are used; a non-empty path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its field constraints. The first violation is
// returned as a ValidationError naming the offending key.
func Validate(cfg *Config) error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewValidationError(keyOf(fe.StructNamespace()), ruleText(fe), fe.Value())
	}
	return errors.Wrap(err, "validating config")
}

// keyOf maps "Config.Model.ClassPriorCount" to "model.class_prior_count".
func keyOf(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func ruleText(fe validator.FieldError) string {
	if fe.Param() == "" {
		return "must satisfy " + fe.Tag()
	}
	return "must satisfy " + fe.Tag() + "=" + fe.Param()
}
