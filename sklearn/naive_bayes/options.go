package naive_bayes

import (
	"github.com/YuminosukeSato/scibayes/core/discrete"
	"github.com/YuminosukeSato/scibayes/pkg/log"
)

// params holds the hyperparameters shared by Learn and CategoricalNB.
type params struct {
	classPriorCount       float64
	featurePosteriorCount float64
	classDomain           *discrete.Domain
	featureDomains        map[string]*discrete.Domain
	logSpace              bool
	logger                log.Logger
}

func newParams(opts ...Option) *params {
	p := &params{
		classPriorCount:       1.0,
		featurePosteriorCount: 1.0,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Option is a functional option for Learn and NewCategoricalNB
type Option func(*params)

// WithClassPriorCount sets the virtual count added to every class value
func WithClassPriorCount(count float64) Option {
	return func(p *params) {
		p.classPriorCount = count
	}
}

// WithFeaturePosteriorCount sets the virtual count added to every feature value within each class
func WithFeaturePosteriorCount(count float64) Option {
	return func(p *params) {
		p.featurePosteriorCount = count
	}
}

// WithClassDomain fixes the class domain instead of inferring it from the data.
func WithClassDomain(domain *discrete.Domain) Option {
	return func(p *params) {
		p.classDomain = domain
	}
}

// WithFeatureDomains fixes the domain of some features. Features not in the
// map get the set of values observed in the training data.
func WithFeatureDomains(domains map[string]*discrete.Domain) Option {
	return func(p *params) {
		p.featureDomains = domains
	}
}

// WithLogSpace makes CategoricalNB accumulate scores in log space.
func WithLogSpace(enabled bool) Option {
	return func(p *params) {
		p.logSpace = enabled
	}
}

// WithLogger sets the logger used by CategoricalNB.
func WithLogger(logger log.Logger) Option {
	return func(p *params) {
		p.logger = logger
	}
}
