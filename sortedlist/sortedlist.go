// Package sortedlist keeps entries in ascending order and addresses them by
// 1-based position.
//
// A SortedList is a thin layer over a tree.OrderedTree: the tree does the
// ordering and the list adds position lookups, an entry count and slice
// export. Positions are never stored; every positional operation walks the
// tree in order, so they cost O(n) while Add, Remove and Contains inherit the
// tree's O(log n).
//
// Entries comparing equal are all kept, in insertion order. Remove and
// RemoveAt take out the earliest-inserted of the equal entries.
//
// Lists are not safe for concurrent use. Wrap one with NewThreadSafe when it
// is shared between goroutines.
package sortedlist

import (
	"errors"
	"iter"
)

var (
	// ErrOutOfRange is returned by position-based operations when the
	// position is below 1 or above the current size.
	ErrOutOfRange = errors.New("position out of range")

	// ErrConcurrentModification is the panic value raised when a list is
	// modified while one of its Seq traversals is running.
	ErrConcurrentModification = errors.New("sorted list modified during iteration")
)

// SortedList is an ordered collection with 1-based positional access.
type SortedList[T any] interface {
	// Add inserts entry at its sorted position. An entry equal to existing
	// ones is placed after them.
	Add(entry T)

	// Remove deletes one entry comparing equal to entry. It reports whether
	// anything was removed.
	Remove(entry T) bool

	// RemoveAt deletes the entry at the given 1-based position and returns
	// it. When several entries compare equal to it, the earliest-inserted of
	// them is the one taken out of the list. Returns ErrOutOfRange if
	// position is not within [1, Size()].
	RemoveAt(position int) (T, error)

	// GetPosition returns the 1-based position of entry. When entry is not
	// present, the result is the negated position it would be inserted at.
	// Zero is never returned.
	GetPosition(entry T) int

	// GetEntryAt returns the entry at the given 1-based position, or
	// ErrOutOfRange if position is not within [1, Size()].
	GetEntryAt(position int) (T, error)

	// Contains reports whether an entry comparing equal to entry is present.
	Contains(entry T) bool

	// Size returns the number of entries.
	Size() int

	// IsEmpty reports whether Size() is zero.
	IsEmpty() bool

	// Clear removes every entry.
	Clear()

	// Entries returns a newly allocated slice of all entries in ascending
	// order. An empty list yields an empty, non-nil slice.
	Entries() []T

	// Seq returns a lazy ascending traversal. Modifying the list while the
	// traversal is running panics with ErrConcurrentModification.
	Seq() iter.Seq[T]
}
