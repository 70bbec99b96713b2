package discrete

import (
	"sort"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// Marginalize sums out the variable at index. Assignments that become equal
// once that position is removed have their weights added together.
func Marginalize(t *Table, index int) (*Table, error) {
	if index < 0 || index >= t.arity {
		return nil, errors.NewInvalidIndexError("Marginalize", index, t.arity)
	}
	out := newTable(t.arity - 1)
	for _, e := range t.Entries() {
		out.add(e.Assignment.without(index), e.Weight)
	}
	return out, nil
}

// MarginalizeMultiple sums out every listed variable. Indices refer to
// positions in the original table and may be given in any order.
// An empty list returns t unchanged.
func MarginalizeMultiple(t *Table, indices []int) (*Table, error) {
	seen := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= t.arity {
			return nil, errors.NewInvalidIndexError("MarginalizeMultiple", i, t.arity)
		}
		if _, dup := seen[i]; dup {
			return nil, errors.NewValidationError("indices", "duplicate index", i)
		}
		seen[i] = struct{}{}
	}

	// 後ろの位置から消すことで、残りのインデックスがずれないようにする
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	out := t
	for _, i := range sorted {
		var err error
		if out, err = Marginalize(out, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Normalize rescales t so its weights sum to 1.
func Normalize(t *Table) (*Table, error) {
	return normalize("Normalize", t)
}

func normalize(op string, t *Table) (*Table, error) {
	total := t.Total()
	if total == 0 {
		return nil, errors.NewZeroTotalWeightError(op, t.Len())
	}
	out := newTable(t.arity)
	for _, e := range t.entries {
		out.entries[e.Assignment.key()] = Entry{Assignment: e.Assignment, Weight: e.Weight / total}
	}
	return out, nil
}

// Condition keeps the assignments whose variable at index equals value,
// drops that position and normalizes the result.
func Condition(t *Table, index int, value Value) (*Table, error) {
	if index < 0 || index >= t.arity {
		return nil, errors.NewInvalidIndexError("Condition", index, t.arity)
	}
	filtered := newTable(t.arity - 1)
	for _, e := range t.Entries() {
		if e.Assignment[index] == value {
			filtered.add(e.Assignment.without(index), e.Weight)
		}
	}
	return normalize("Condition", filtered)
}
