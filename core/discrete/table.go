package discrete

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/scibayes/pkg/errors"
)

// Assignment is an ordered tuple of values, one per variable of a table.
type Assignment []Value

func (a Assignment) key() string {
	var b strings.Builder
	for _, v := range a {
		v.appendKey(&b)
	}
	return b.String()
}

func (a Assignment) without(index int) Assignment {
	out := make(Assignment, 0, len(a)-1)
	out = append(out, a[:index]...)
	return append(out, a[index+1:]...)
}

func (a Assignment) less(o Assignment) bool {
	for i := range a {
		if i >= len(o) {
			return false
		}
		if a[i] != o[i] {
			return a[i].Less(o[i])
		}
	}
	return len(a) < len(o)
}

// Entry pairs an assignment with its non-negative weight.
type Entry struct {
	Assignment Assignment
	Weight     float64
}

// Table maps assignments of a fixed arity to non-negative weights.
// A Table is immutable once built; absent assignments have weight 0.
type Table struct {
	arity   int
	entries map[string]Entry
}

// NewTable builds a table of the given arity. Duplicate assignments are summed.
func NewTable(arity int, entries ...Entry) (*Table, error) {
	if arity < 0 {
		return nil, errors.NewValidationError("arity", "must be non-negative", arity)
	}
	t := newTable(arity)
	for _, e := range entries {
		if len(e.Assignment) != arity {
			return nil, errors.NewDimensionError("NewTable", arity, len(e.Assignment))
		}
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, errors.NewValidationError("weight", "must be a finite non-negative number", e.Weight)
		}
		t.add(e.Assignment, e.Weight)
	}
	return t, nil
}

func newTable(arity int) *Table {
	return &Table{arity: arity, entries: make(map[string]Entry)}
}

func (t *Table) add(a Assignment, w float64) {
	k := a.key()
	if e, ok := t.entries[k]; ok {
		e.Weight += w
		t.entries[k] = e
		return
	}
	t.entries[k] = Entry{Assignment: append(Assignment(nil), a...), Weight: w}
}

// Arity returns the length of every assignment in t.
func (t *Table) Arity() int { return t.arity }

// Len returns the number of stored assignments.
func (t *Table) Len() int { return len(t.entries) }

// Weight returns the weight of a, or 0 if a is absent.
func (t *Table) Weight(a Assignment) float64 {
	return t.entries[a.key()].Weight
}

// Has reports whether a is stored in t.
func (t *Table) Has(a Assignment) bool {
	_, ok := t.entries[a.key()]
	return ok
}

// Entries returns a copy of the entries ordered by assignment.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, Entry{Assignment: append(Assignment(nil), e.Assignment...), Weight: e.Weight})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Assignment.less(out[j].Assignment) })
	return out
}

// Assignments returns the stored assignments in order.
func (t *Table) Assignments() []Assignment {
	entries := t.Entries()
	out := make([]Assignment, len(entries))
	for i, e := range entries {
		out[i] = e.Assignment
	}
	return out
}

// Total returns the sum of all weights.
func (t *Table) Total() float64 {
	entries := t.Entries()
	weights := make([]float64, len(entries))
	for i, e := range entries {
		weights[i] = e.Weight
	}
	return floats.Sum(weights)
}

// Distribution converts a unary table into a Distribution.
func (t *Table) Distribution() (Distribution, error) {
	if t.arity != 1 {
		return nil, errors.NewDimensionError("Table.Distribution", 1, t.arity)
	}
	p := make(Distribution, len(t.entries))
	for _, e := range t.entries {
		p[e.Assignment[0]] = e.Weight
	}
	return p, nil
}
