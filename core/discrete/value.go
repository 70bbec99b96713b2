// Package discrete implements exact probability tables over discrete random
// variables: the value and domain types, marginalization, normalization and
// conditioning of tables, and estimation of smoothed discrete distributions
// from observed data.
//
// Tables and distributions are values. Every operation returns a new table
// and never mutates its input.
package discrete

import (
	"strconv"
	"strings"
)

// Kind tags the payload of a Value.
type Kind uint8

const (
	// KindInt is an integer code such as a 0/1 boolean feature.
	KindInt Kind = iota
	// KindString is an arbitrary string token such as a class label.
	KindString
)

// Value is one discrete outcome of a random variable.
//
// Values are comparable and usable as map keys. Two values are equal iff they
// have the same kind and payload: Int(1) never equals Str("1"). The zero
// Value is Int(0).
type Value struct {
	kind Kind
	n    int64
	s    string
}

// Int returns an integer-coded value.
func Int(n int64) Value { return Value{kind: KindInt, n: n} }

// Bool returns Int(1) for true and Int(0) for false.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Str returns a string token value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// ParseValue reads a CSV cell: integers become integer codes, anything else
// is kept as a string token. Surrounding whitespace is dropped either way.
func ParseValue(s string) Value {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Int(n)
	}
	return Str(trimmed)
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer payload of v.
func (v Value) AsInt() (int64, bool) { return v.n, v.kind == KindInt }

// AsString returns the string payload of v.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// IsPositive is the single label coercion rule of the package: a value
// denotes the positive class iff it equals Int(1).
func (v Value) IsPositive() bool { return v.kind == KindInt && v.n == 1 }

// Less orders integers numerically before strings, strings lexicographically.
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	if v.kind == KindInt {
		return v.n < o.n
	}
	return v.s < o.s
}

func (v Value) String() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.n, 10)
	}
	return v.s
}

// appendKey writes an unambiguous encoding of v used to key assignments.
func (v Value) appendKey(b *strings.Builder) {
	if v.kind == KindInt {
		b.WriteByte('i')
		b.WriteString(strconv.FormatInt(v.n, 10))
		b.WriteByte(';')
		return
	}
	b.WriteByte('s')
	b.WriteString(strconv.Itoa(len(v.s)))
	b.WriteByte(':')
	b.WriteString(v.s)
}
