package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/scibayes/core/discrete"
	"github.com/YuminosukeSato/scibayes/internal/config"
	"github.com/YuminosukeSato/scibayes/metrics"
	"github.com/YuminosukeSato/scibayes/pkg/errors"
	"github.com/YuminosukeSato/scibayes/pkg/log"
	"github.com/YuminosukeSato/scibayes/preprocessing/games"
	"github.com/YuminosukeSato/scibayes/sklearn/naive_bayes"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train on a features CSV and print the learned tables and training fit",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("train")
		if path == "" {
			path = cfg.Data.TrainPath
		}
		train, err := loadBooleanDataset(path, cfg.Data.StatVars)
		if err != nil {
			return err
		}
		nb, err := fitClassifier(train, cfg.Model, logger)
		if err != nil {
			return err
		}
		m, err := nb.Model()
		if err != nil {
			return err
		}
		printModel(cmd.OutOrStdout(), m)

		acc, err := nb.Score(train)
		if err != nil {
			return err
		}
		logger.Info("trained",
			log.OperationKey, log.OperationFit,
			log.SamplesKey, len(train),
			log.AccuracyKey, acc,
		)
		fmt.Fprintf(cmd.OutOrStdout(), "training accuracy %s\n", accuracyText(acc))

		stats, err := metrics.ClassifierAccuracy(nb.ProbabilityOf(discrete.Int(1)), cfg.Evaluation.Threshold, train, cfg.Model.ClassKey)
		if err != nil {
			return err
		}
		printConfusion(cmd.OutOrStdout(), stats)
		return nil
	},
}

func init() {
	trainCmd.Flags().String("train", "", "training features CSV (default data.train_path)")
}

// loadBooleanDataset reads a features CSV and converts it to boolean records.
func loadBooleanDataset(path string, statVars []string) (discrete.Dataset, error) {
	if path == "" {
		return nil, errors.NewValueError("loadBooleanDataset", "no features path given")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening features")
	}
	defer f.Close()

	features, err := games.ReadFeatures(f, statVars)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return games.BooleanDataset(features, statVars), nil
}

// fitClassifier trains a CategoricalNB with every feature and the class
// fixed to the {0, 1} domain, so test records may carry values the training
// set never showed.
func fitClassifier(train discrete.Dataset, mc config.ModelConfig, logger log.Logger) (*naive_bayes.CategoricalNB, error) {
	featureKeys := mc.Features
	if len(featureKeys) == 0 {
		featureKeys = games.PredictionVariables(train, mc.ClassKey)
	}
	nb := naive_bayes.NewCategoricalNB(
		naive_bayes.WithClassPriorCount(mc.ClassPriorCount),
		naive_bayes.WithFeaturePosteriorCount(mc.FeaturePosteriorCount),
		naive_bayes.WithLogSpace(mc.LogSpace),
		naive_bayes.WithClassDomain(games.BinaryDomain()),
		naive_bayes.WithFeatureDomains(games.BinaryDomains(featureKeys)),
		naive_bayes.WithLogger(logger),
	)
	if err := nb.Fit(train, mc.ClassKey, featureKeys); err != nil {
		return nil, err
	}
	return nb, nil
}
