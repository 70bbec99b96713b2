package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scibayes/core/discrete"
	"github.com/YuminosukeSato/scibayes/core/model"
	"github.com/YuminosukeSato/scibayes/internal/config"
	"github.com/YuminosukeSato/scibayes/metrics"
	"github.com/YuminosukeSato/scibayes/pkg/log"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Train on one features CSV and evaluate on another",
	RunE: func(cmd *cobra.Command, args []string) error {
		trainPath, _ := cmd.Flags().GetString("train")
		testPath, _ := cmd.Flags().GetString("test")
		if trainPath == "" {
			trainPath = cfg.Data.TrainPath
		}
		if testPath == "" {
			testPath = cfg.Data.TestPath
		}
		if cmd.Flags().Changed("threshold") {
			cfg.Evaluation.Threshold, _ = cmd.Flags().GetFloat64("threshold")
			if err := config.Validate(cfg); err != nil {
				return err
			}
		}

		train, err := loadBooleanDataset(trainPath, cfg.Data.StatVars)
		if err != nil {
			return err
		}
		test, err := loadBooleanDataset(testPath, cfg.Data.StatVars)
		if err != nil {
			return err
		}
		nb, err := fitClassifier(train, cfg.Model, logger)
		if err != nil {
			return err
		}
		return evaluate(cmd.OutOrStdout(), nb.ProbabilityOf(discrete.Int(1)), test, cfg.Model.ClassKey, cfg.Evaluation)
	},
}

func init() {
	evaluateCmd.Flags().String("train", "", "training features CSV (default data.train_path)")
	evaluateCmd.Flags().String("test", "", "test features CSV (default data.test_path)")
	evaluateCmd.Flags().Float64("threshold", 0.5, "decision threshold (default evaluation.threshold)")
}

// evaluate prints the confusion statistics at the configured threshold, the
// threshold-free scores and the sweep, and saves the sweep plot if asked.
func evaluate(w io.Writer, score model.ScoreFunc, test discrete.Dataset, classKey string, ec config.EvaluationConfig) error {
	stats, err := metrics.ClassifierAccuracy(score, ec.Threshold, test, classKey)
	if err != nil {
		return err
	}
	logger.Info("evaluated",
		log.OperationKey, log.OperationEvaluate,
		log.SamplesKey, stats.N(),
		log.ThresholdKey, stats.Threshold,
		log.AccuracyKey, stats.Accuracy,
		log.PrecisionKey, stats.Precision,
		log.RecallKey, stats.Recall,
	)
	printConfusion(w, stats)

	yTrue, yProb, err := metrics.Scores(score, test, classKey)
	if err != nil {
		return err
	}
	auc, err := metrics.AUC(yTrue, yProb)
	if err != nil {
		return err
	}
	logLoss, err := metrics.BinaryLogLoss(yTrue, yProb)
	if err != nil {
		return err
	}
	brier, err := metrics.BrierScore(yTrue, yProb)
	if err != nil {
		return err
	}
	printScores(w, auc, logLoss, brier)

	sweep, err := metrics.ThresholdSweep(score, metrics.Thresholds(ec.SweepSteps), test, classKey)
	if err != nil {
		return err
	}
	printSweep(w, sweep)

	if ec.PlotPath != "" {
		if err := metrics.PlotThresholdCurve(sweep, ec.PlotPath); err != nil {
			return err
		}
		logger.Info("threshold curve saved", log.PathKey, ec.PlotPath)
		okColor.Fprintf(w, "threshold curve saved to %s\n", ec.PlotPath)
	}
	return nil
}
