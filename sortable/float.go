package sortable

import "cmp"

// Float is a sortable wrapper type for float64.
// NaN sorts before every other value and is equal to itself, following cmp.Compare.
type Float float64

// Compile-time check that Float implements Sortable[Float].
var _ Sortable[Float] = (*Float)(nil)

// Equals returns true if both values compare equal under cmp.Compare.
func (f Float) Equals(other Float) bool {
	return cmp.Compare(float64(f), float64(other)) == 0
}

// LessThan returns true if this Float sorts before the other Float.
func (f Float) LessThan(other Float) bool {
	return cmp.Less(float64(f), float64(other))
}
