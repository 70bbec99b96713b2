package discrete

import "sort"

// Domain is the finite set of values a variable may take. It has no order;
// Values returns a sorted copy for deterministic iteration only.
type Domain struct {
	values map[Value]struct{}
}

// NewDomain returns the set of distinct values given.
func NewDomain(values ...Value) *Domain {
	d := &Domain{values: make(map[Value]struct{}, len(values))}
	for _, v := range values {
		d.values[v] = struct{}{}
	}
	return d
}

// DomainOf returns the distinct values observed in a column.
func DomainOf(column []Value) *Domain { return NewDomain(column...) }

// Contains reports whether v belongs to the domain.
func (d *Domain) Contains(v Value) bool {
	if d == nil {
		return false
	}
	_, ok := d.values[v]
	return ok
}

// Len returns the number of distinct values.
func (d *Domain) Len() int {
	if d == nil {
		return 0
	}
	return len(d.values)
}

// Values returns the members in Value order.
func (d *Domain) Values() []Value {
	if d == nil {
		return nil
	}
	out := make([]Value, 0, len(d.values))
	for v := range d.values {
		out = append(out, v)
	}
	sortValues(out)
	return out
}

func sortValues(vs []Value) {
	sort.Slice(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
}
