package sortable

import "facette.io/natsort"

// Natural is a string ordered by natural sort order, which compares embedded
// runs of digits numerically: "file2" sorts before "file10".
//
// Two Natural values are equal when neither sorts before the other, so
// spellings that natsort cannot tell apart are treated as the same entry.
type Natural string

var _ Sortable[Natural] = (*Natural)(nil)

// Equals reports whether neither value sorts before the other.
func (n Natural) Equals(other Natural) bool {
	return !n.LessThan(other) && !other.LessThan(n)
}

// LessThan reports whether n sorts before other in natural order.
func (n Natural) LessThan(other Natural) bool {
	return natsort.Compare(string(n), string(other))
}
