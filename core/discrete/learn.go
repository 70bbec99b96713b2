package discrete

import (
	"math"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// LearnDiscrete estimates a distribution over domain from observed values
// with additive smoothing:
//
//	P(v) = (count(v) + virtualCount) / (|domain|*virtualCount + len(dataset))
//
// A nil domain is inferred as the distinct values of dataset. Observed values
// outside an explicit domain are rejected.
func LearnDiscrete(dataset []Value, virtualCount float64, domain *Domain) (Distribution, error) {
	if virtualCount < 0 || math.IsNaN(virtualCount) || math.IsInf(virtualCount, 0) {
		return nil, errors.NewValidationError("virtual_count", "must be a finite non-negative number", virtualCount)
	}
	if domain == nil {
		domain = NewDomain(dataset...)
	}
	if domain.Len() == 0 {
		return nil, errors.NewValueError("LearnDiscrete", "domain is empty")
	}

	counts := make(map[Value]int, domain.Len())
	for _, v := range dataset {
		if !domain.Contains(v) {
			return nil, errors.NewMissingDomainValueError("LearnDiscrete", "dataset", v)
		}
		counts[v]++
	}

	denominator := float64(domain.Len())*virtualCount + float64(len(dataset))
	if denominator == 0 {
		return nil, errors.NewZeroTotalWeightError("LearnDiscrete", domain.Len())
	}

	p := make(Distribution, domain.Len())
	for _, v := range domain.Values() {
		p[v] = (float64(counts[v]) + virtualCount) / denominator
	}
	return p, nil
}
