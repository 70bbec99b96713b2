// Package naive_bayes implements Naive Bayes classification over discrete
// features: estimating a class prior and per-feature class-conditional
// distributions from labelled records, and computing class posteriors for
// new records under the conditional independence assumption.
package naive_bayes

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/scibayes/core/discrete"
	"github.com/YuminosukeSato/scibayes/core/parallel"
	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// ClassConditional gives P(F | C=c) for every class value c.
type ClassConditional map[discrete.Value]discrete.Distribution

// Model is a trained Naive Bayes model. It is never modified after Learn returns.
type Model struct {
	ClassKey string
	Prior    discrete.Distribution
	Features map[string]ClassConditional
}

// Classes returns the class domain in Value order.
func (m *Model) Classes() []discrete.Value { return m.Prior.Values() }

// FeatureKeys returns the modelled features in sorted order.
func (m *Model) FeatureKeys() []string { return featureKeys(m.Features) }

// Infer returns P(C | instance) computed by direct products.
func (m *Model) Infer(instance discrete.Record) (discrete.Distribution, error) {
	return Infer(m.Prior, m.Features, instance)
}

// InferLog returns P(C | instance) accumulated in log space.
func (m *Model) InferLog(instance discrete.Record) (discrete.Distribution, error) {
	return InferLog(m.Prior, m.Features, instance)
}

// Learn estimates a Naive Bayes model predicting classKey from featureKeys.
//
// The class prior is learned over every record with the class prior count.
// For each feature and each class value, the feature's values in the records
// of that class are smoothed with the feature posterior count over the
// feature's full domain, so a class without records still gets a valid
// distribution when the count is positive.
func Learn(classKey string, featureKeys []string, dataset discrete.Dataset, opts ...Option) (*Model, error) {
	return learn(context.Background(), classKey, featureKeys, dataset, newParams(opts...))
}

func learn(ctx context.Context, classKey string, featureKeys []string, dataset discrete.Dataset, p *params) (*Model, error) {
	classes, err := dataset.Column(classKey)
	if err != nil {
		return nil, err
	}

	classDomain := p.classDomain
	if classDomain == nil {
		classDomain = discrete.DomainOf(classes)
	}
	prior, err := discrete.LearnDiscrete(classes, p.classPriorCount, classDomain)
	if err != nil {
		return nil, errors.Wrapf(err, "class prior of %q", classKey)
	}

	partitions := make(map[discrete.Value]discrete.Dataset, classDomain.Len())
	for i, r := range dataset {
		partitions[classes[i]] = append(partitions[classes[i]], r)
	}
	classValues := classDomain.Values()

	conditionals := make([]ClassConditional, len(featureKeys))
	err = parallel.ForEach(ctx, len(featureKeys), func(i int) error {
		key := featureKeys[i]
		column, err := dataset.Column(key)
		if err != nil {
			return err
		}
		domain := p.featureDomains[key]
		if domain == nil {
			domain = discrete.DomainOf(column)
		}

		cc := make(ClassConditional, len(classValues))
		for _, c := range classValues {
			subset, err := partitions[c].Column(key)
			if err != nil {
				return err
			}
			dist, err := discrete.LearnDiscrete(subset, p.featurePosteriorCount, domain)
			if err != nil {
				return errors.Wrapf(err, "feature %q given %s=%s", key, classKey, c)
			}
			cc[c] = dist
		}
		conditionals[i] = cc
		return nil
	})
	if err != nil {
		return nil, err
	}

	features := make(map[string]ClassConditional, len(featureKeys))
	for i, key := range featureKeys {
		features[key] = conditionals[i]
	}
	return &Model{ClassKey: classKey, Prior: prior, Features: features}, nil
}

// Infer computes P(C=c | instance) ∝ P(C=c) * Π_k P(F_k = instance[F_k] | C=c)
// for every class in prior and normalizes across classes.
//
// Every feature in features must be present in instance; keys of instance
// that are not modelled are ignored.
func Infer(prior discrete.Distribution, features map[string]ClassConditional, instance discrete.Record) (discrete.Distribution, error) {
	keys, err := checkInstance("Infer", features, instance)
	if err != nil {
		return nil, err
	}

	scores := make(discrete.Distribution, len(prior))
	for _, c := range prior.Values() {
		score := prior[c]
		for _, k := range keys {
			p, err := conditional("Infer", features, k, c, instance[k])
			if err != nil {
				return nil, err
			}
			score *= p
		}
		scores[c] = score
	}

	posterior, err := discrete.NormalizeDistribution(scores)
	if err != nil {
		return nil, errors.NewZeroTotalWeightError("Infer", len(scores))
	}
	return posterior, nil
}

// InferLog has the same contract as Infer but sums log probabilities and
// normalizes with log-sum-exp, so it does not underflow for many features.
func InferLog(prior discrete.Distribution, features map[string]ClassConditional, instance discrete.Record) (discrete.Distribution, error) {
	keys, err := checkInstance("InferLog", features, instance)
	if err != nil {
		return nil, err
	}

	classes := prior.Values()
	if len(classes) == 0 {
		return nil, errors.NewZeroTotalWeightError("InferLog", 0)
	}

	logScores := make([]float64, len(classes))
	for i, c := range classes {
		score := math.Log(prior[c])
		for _, k := range keys {
			p, err := conditional("InferLog", features, k, c, instance[k])
			if err != nil {
				return nil, err
			}
			score += math.Log(p)
		}
		logScores[i] = score
	}

	lse := floats.LogSumExp(logScores)
	if math.IsInf(lse, -1) || math.IsNaN(lse) {
		return nil, errors.NewZeroTotalWeightError("InferLog", len(classes))
	}

	posterior := make(discrete.Distribution, len(classes))
	for i, c := range classes {
		posterior[c] = math.Exp(logScores[i] - lse)
	}
	return posterior, nil
}

func checkInstance(op string, features map[string]ClassConditional, instance discrete.Record) ([]string, error) {
	keys := featureKeys(features)
	for _, k := range keys {
		if _, ok := instance[k]; !ok {
			return nil, errors.NewMissingFeatureError(op, k, -1)
		}
	}
	return keys, nil
}

func conditional(op string, features map[string]ClassConditional, key string, class, value discrete.Value) (float64, error) {
	dist, ok := features[key][class]
	if !ok {
		return 0, errors.NewMissingDomainValueError(op, "class of "+key, class)
	}
	p, ok := dist[value]
	if !ok {
		return 0, errors.NewMissingDomainValueError(op, key, value)
	}
	return p, nil
}

func featureKeys(features map[string]ClassConditional) []string {
	keys := make([]string, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
