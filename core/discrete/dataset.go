package discrete

import (
	"sort"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// Record is one labelled instance: a mapping from variable name to value.
type Record map[string]Value

// Keys returns the variable names of r in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dataset is an ordered sequence of records.
type Dataset []Record

// Keys returns the variable names of the first record.
func (d Dataset) Keys() []string {
	if len(d) == 0 {
		return nil
	}
	return d[0].Keys()
}

// Validate checks that every record defines the same variables.
func (d Dataset) Validate() error {
	union := make(map[string]struct{})
	for _, r := range d {
		for k := range r {
			union[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, r := range d {
		for _, k := range keys {
			if _, ok := r[k]; !ok {
				return errors.NewMissingFeatureError("Dataset.Validate", k, i)
			}
		}
	}
	return nil
}

// Column extracts the values of one variable in record order.
func (d Dataset) Column(key string) ([]Value, error) {
	out := make([]Value, len(d))
	for i, r := range d {
		v, ok := r[key]
		if !ok {
			return nil, errors.NewMissingFeatureError("Dataset.Column", key, i)
		}
		out[i] = v
	}
	return out, nil
}

// Filter returns the records whose variable key equals v.
func (d Dataset) Filter(key string, v Value) Dataset {
	var out Dataset
	for _, r := range d {
		if got, ok := r[key]; ok && got == v {
			out = append(out, r)
		}
	}
	return out
}
