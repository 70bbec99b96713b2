package discrete

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// Tolerance bounds |sum-1| for a valid probability distribution.
const Tolerance = 1e-5

// Distribution maps each value of a single variable to its probability.
type Distribution map[Value]float64

// ValidProbabilityDistribution reports whether every probability is
// non-negative and the probabilities sum to 1 within Tolerance.
func ValidProbabilityDistribution(p Distribution) bool {
	for _, v := range p {
		if v < 0 || math.IsNaN(v) {
			return false
		}
	}
	return math.Abs(p.Total()-1) <= Tolerance
}

// Valid is ValidProbabilityDistribution(p).
func (p Distribution) Valid() bool { return ValidProbabilityDistribution(p) }

// Prob returns P(v), 0 when v is absent.
func (p Distribution) Prob(v Value) float64 { return p[v] }

// Values returns the support of p in Value order.
func (p Distribution) Values() []Value {
	out := make([]Value, 0, len(p))
	for v := range p {
		out = append(out, v)
	}
	sortValues(out)
	return out
}

// Total sums the probabilities in Value order.
func (p Distribution) Total() float64 {
	vs := p.Values()
	weights := make([]float64, len(vs))
	for i, v := range vs {
		weights[i] = p[v]
	}
	return floats.Sum(weights)
}

// Argmax returns the most probable value; ties go to the smallest value.
func (p Distribution) Argmax() (Value, bool) {
	var (
		best  Value
		bestP = math.Inf(-1)
		found bool
	)
	for _, v := range p.Values() {
		if p[v] > bestP {
			best, bestP, found = v, p[v], true
		}
	}
	return best, found
}

// Table returns p as a unary table.
func (p Distribution) Table() *Table {
	t := newTable(1)
	for v, w := range p {
		t.add(Assignment{v}, w)
	}
	return t
}

// NormalizeDistribution rescales p to sum to 1.
func NormalizeDistribution(p Distribution) (Distribution, error) {
	total := p.Total()
	if total == 0 {
		return nil, errors.NewZeroTotalWeightError("NormalizeDistribution", len(p))
	}
	out := make(Distribution, len(p))
	for v, w := range p {
		out[v] = w / total
	}
	return out, nil
}

// Uniform assigns 1/|d| to every member of d.
func Uniform(d *Domain) Distribution {
	out := make(Distribution, d.Len())
	for _, v := range d.Values() {
		out[v] = 1 / float64(d.Len())
	}
	return out
}
