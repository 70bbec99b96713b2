package naive_bayes

import (
	"context"
	"time"

	"github.com/YuminosukeSato/scibayes/core/discrete"
	"github.com/YuminosukeSato/scibayes/core/model"
	"github.com/YuminosukeSato/scibayes/core/parallel"
	"github.com/YuminosukeSato/scibayes/pkg/errors"
	"github.com/YuminosukeSato/scibayes/pkg/log"
)

const modelName = "CategoricalNB"

var _ model.Classifier = (*CategoricalNB)(nil)

// CategoricalNB is a Naive Bayes classifier for categorical features
// held in discrete.Record values.
//
// A fitted CategoricalNB may be used for prediction from many goroutines.
// Fit must not run concurrently with prediction.
type CategoricalNB struct {
	model.BaseEstimator

	params *params
	logger log.Logger

	// Learned parameters
	model_       *Model
	classes_     []discrete.Value
	featureKeys_ []string
}

// NewCategoricalNB creates a new CategoricalNB classifier
func NewCategoricalNB(opts ...Option) *CategoricalNB {
	nb := &CategoricalNB{params: newParams(opts...)}
	logger := nb.params.logger
	if logger == nil {
		logger = log.GetLoggerWithName("naive_bayes")
	}
	nb.logger = logger.With(log.ModelNameKey, modelName, log.EstimatorIDKey, nb.ID())
	return nb
}

// Fit learns the class prior and class-conditional tables from dataset.
func (nb *CategoricalNB) Fit(dataset discrete.Dataset, classKey string, featureKeys []string) error {
	if len(dataset) == 0 {
		return errors.NewModelError("CategoricalNB.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := dataset.Validate(); err != nil {
		return err
	}

	nb.logger.Debug("Fitting CategoricalNB",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(dataset),
		log.FeaturesKey, len(featureKeys),
		log.ClassPriorCountKey, nb.params.classPriorCount,
		log.FeaturePosteriorCountKey, nb.params.featurePosteriorCount,
	)
	start := time.Now()

	m, err := learn(context.Background(), classKey, featureKeys, dataset, nb.params)
	if err != nil {
		nb.logger.Error("CategoricalNB fit failed", err, log.OperationKey, log.OperationFit)
		return err
	}

	nb.model_ = m
	nb.classes_ = m.Classes()
	nb.featureKeys_ = append([]string(nil), featureKeys...)
	nb.SetFitted(len(dataset), len(featureKeys))

	nb.logger.Debug("CategoricalNB fitted",
		log.OperationKey, log.OperationFit,
		log.ClassesKey, len(nb.classes_),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// PredictProba returns P(C | record). Keys of record that the model does not use are ignored.
func (nb *CategoricalNB) PredictProba(record discrete.Record) (discrete.Distribution, error) {
	if err := nb.RequireFitted(modelName, "PredictProba"); err != nil {
		return nil, err
	}
	if nb.params.logSpace {
		return nb.model_.InferLog(record)
	}
	return nb.model_.Infer(record)
}

// PredictProbaBatch scores every record of dataset, in order.
func (nb *CategoricalNB) PredictProbaBatch(dataset discrete.Dataset) ([]discrete.Distribution, error) {
	if err := nb.RequireFitted(modelName, "PredictProbaBatch"); err != nil {
		return nil, err
	}

	out := make([]discrete.Distribution, len(dataset))
	err := parallel.ForEach(context.Background(), len(dataset), func(i int) error {
		p, err := nb.PredictProba(dataset[i])
		if err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
		out[i] = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	nb.logger.Debug("Batch prediction completed",
		log.OperationKey, log.OperationPredictBatch,
		log.SamplesKey, len(dataset),
	)
	return out, nil
}

// Predict returns the class with the highest posterior probability.
func (nb *CategoricalNB) Predict(record discrete.Record) (discrete.Value, error) {
	p, err := nb.PredictProba(record)
	if err != nil {
		return discrete.Value{}, err
	}
	best, _ := p.Argmax()
	return best, nil
}

// Score returns the fraction of records whose predicted class equals their label.
func (nb *CategoricalNB) Score(dataset discrete.Dataset) (float64, error) {
	if err := nb.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}
	if len(dataset) == 0 {
		return 0, errors.NewValueError("CategoricalNB.Score", "empty test set")
	}
	labels, err := dataset.Column(nb.model_.ClassKey)
	if err != nil {
		return 0, err
	}
	probas, err := nb.PredictProbaBatch(dataset)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i, p := range probas {
		if best, _ := p.Argmax(); best == labels[i] {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(dataset))

	nb.logger.Debug("Scored CategoricalNB",
		log.OperationKey, log.OperationScore,
		log.SamplesKey, len(dataset),
		log.AccuracyKey, accuracy,
	)
	return accuracy, nil
}

// ProbabilityOf returns a scoring function reading P(C=class | record),
// the form consumed by metrics.ClassifierAccuracy.
func (nb *CategoricalNB) ProbabilityOf(class discrete.Value) model.ScoreFunc {
	return func(record discrete.Record) (float64, error) {
		p, err := nb.PredictProba(record)
		if err != nil {
			return 0, err
		}
		v, ok := p[class]
		if !ok {
			return 0, errors.NewMissingDomainValueError("CategoricalNB.ProbabilityOf", nb.model_.ClassKey, class)
		}
		return v, nil
	}
}

// Classes returns the class domain in Value order, or nil before Fit.
func (nb *CategoricalNB) Classes() []discrete.Value {
	if !nb.IsFitted() {
		return nil
	}
	return append([]discrete.Value(nil), nb.classes_...)
}

// Model returns the learned prior and class-conditional tables.
func (nb *CategoricalNB) Model() (*Model, error) {
	if err := nb.RequireFitted(modelName, "Model"); err != nil {
		return nil, err
	}
	return nb.model_, nil
}

// GetParams returns the hyperparameters of the estimator.
func (nb *CategoricalNB) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"class_prior_count":       nb.params.classPriorCount,
		"feature_posterior_count": nb.params.featurePosteriorCount,
		"log_space":               nb.params.logSpace,
	}
}
