// Command scibayes builds game features, trains a Naive Bayes classifier on
// them and evaluates it against a held-out season.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scibayes/internal/config"
	"github.com/YuminosukeSato/scibayes/pkg/log"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	logLevel   string
	noColor    bool

	cfg    *config.Config
	logger log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "scibayes",
	Short:         "Naive Bayes game outcome classifier",
	Long:          `scibayes turns game results into boolean team comparisons and predicts the winner with a discrete Naive Bayes model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			if err := config.Validate(cfg); err != nil {
				return err
			}
		}
		log.SetupLogger(cfg.LogLevel)
		logger = log.GetLoggerWithName("cli").With(log.RunIDKey, uuid.NewString())
		setColor(noColor)
		return nil
	},
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, GitCommit)
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(evaluateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
