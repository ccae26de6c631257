// Package sortable provides sortable wrapper types for primitive types to implement comparison interfaces.
package sortable

import (
	"github.com/amp-labs/amp-sortedlist/compare"
)

// Sortable is implemented by types with a total order. LessThan must be a strict
// ordering, and Equals must agree with it: a.Equals(b) exactly when neither
// a.LessThan(b) nor b.LessThan(a).
type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Compare is the three-way comparison induced by a Sortable type.
func Compare[T Sortable[T]](a, b T) int {
	switch {
	case a.Equals(b):
		return 0
	case a.LessThan(b):
		return -1
	default:
		return 1
	}
}

// CompareFunc returns Compare as a compare.Func, ready to hand to the tree and
// list constructors.
func CompareFunc[T Sortable[T]]() compare.Func[T] {
	return Compare[T]
}
