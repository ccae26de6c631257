// Package tree provides the ordered-tree collaborator behind sorted lists.
//
// An OrderedTree stores values in ascending order as defined by a three-way
// comparison and hands them back through in-order traversal. Trees are
// multisets: inserting a value equal to one already stored keeps both, and the
// newer entry is placed after the existing equal entries. Keyed removal takes
// out the earliest-inserted entry among the equal ones.
//
// Several interchangeable backends are available (see Kind). None of them is
// safe for concurrent use.
package tree

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/optional"
)

// ErrUnknownKind is returned when a tree backend name is not recognized.
var ErrUnknownKind = errors.New("unknown tree kind")

// OrderedTree is the storage contract a sorted list is built on.
type OrderedTree[T any] interface {
	// Insert adds a value. Values equal to existing entries are kept as well.
	Insert(value T)

	// RemoveByValue removes one entry comparing equal to value and returns it,
	// or None when there is no such entry.
	RemoveByValue(value T) optional.Value[T]

	// Contains reports whether an entry comparing equal to value exists.
	Contains(value T) bool

	// Clear removes every entry.
	Clear()

	// InOrder returns a fresh ascending traversal. Every call starts over from
	// the smallest entry; the tree must not be modified while one is running.
	InOrder() iter.Seq[T]

	// Len returns the number of stored entries.
	Len() int
}

// Kind names a tree backend.
type Kind string

const (
	// RedBlack is a red-black binary search tree. It is the default backend.
	RedBlack Kind = "redblack"

	// GoogleBTree is backed by github.com/google/btree.
	GoogleBTree Kind = "btree"

	// TidwallBTree is backed by github.com/tidwall/btree.
	TidwallBTree Kind = "tidwall"

	// AjwernerBTree is backed by github.com/anacrolix/btree.
	AjwernerBTree Kind = "ajwerner"
)

// DefaultDegree is the branching degree used by B-tree backends unless WithDegree says otherwise.
const DefaultDegree = 32

// Kinds returns every known backend, default first.
func Kinds() []Kind {
	return []Kind{RedBlack, GoogleBTree, TidwallBTree, AjwernerBTree}
}

// String returns the backend name.
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a backend name into a Kind. Matching ignores case and
// surrounding whitespace; an empty name selects the default backend.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return RedBlack, nil
	}

	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

type config struct {
	degree int
}

// Option configures a tree created by New.
type Option func(*config)

// WithDegree sets the branching degree of B-tree backends. Values below 2 are
// ignored. The red-black and ajwerner backends have no tunable degree.
func WithDegree(degree int) Option {
	return func(c *config) {
		if degree >= 2 { //nolint:mnd
			c.degree = degree
		}
	}
}

// New creates an empty tree of the given kind ordered by order.
func New[T any](kind Kind, order compare.Func[T], opts ...Option) (OrderedTree[T], error) {
	cfg := &config{degree: DefaultDegree}

	for _, opt := range opts {
		opt(cfg)
	}

	switch kind {
	case RedBlack, "":
		return NewRedBlackTree(order), nil
	case GoogleBTree:
		return newGoogleBTree(order, cfg.degree), nil
	case TidwallBTree:
		return newTidwallBTree(order, cfg.degree), nil
	case AjwernerBTree:
		return newAjwernerBTree(order), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}
