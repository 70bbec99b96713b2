// Package model provides the estimator base type and the interfaces shared by
// discrete classifiers and the evaluation code.
package model

import (
	"github.com/YuminosukeSato/scibayes/core/discrete"
)

// ScoreFunc maps one record to the probability that it belongs to the
// positive class. It is what the evaluator consumes.
type ScoreFunc func(discrete.Record) (float64, error)

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit learns from dataset, predicting classKey from featureKeys.
	Fit(dataset discrete.Dataset, classKey string, featureKeys []string) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict returns the most probable class for one record.
	Predict(record discrete.Record) (discrete.Value, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the accuracy of Predict on a labelled dataset.
	Score(dataset discrete.Dataset) (float64, error)
}

// ProbabilisticClassifier exposes posterior class distributions.
type ProbabilisticClassifier interface {
	PredictProba(record discrete.Record) (discrete.Distribution, error)
	// ProbabilityOf returns a ScoreFunc reading P(class | record).
	ProbabilityOf(class discrete.Value) ScoreFunc
}

// Classifier combines interfaces for classification models.
type Classifier interface {
	Fitter
	Predictor
	Scorer
	ProbabilisticClassifier

	// Classes returns the class domain seen during fitting, in Value order.
	Classes() []discrete.Value
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}
