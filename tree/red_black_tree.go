package tree

import (
	"fmt"
	"iter"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/optional"
)

// visitor defines the interface for tree traversal using the visitor pattern.
// Implementations should return true to continue traversal, false to stop.
type visitor[T any] interface {
	Visit(node *rbtNode[T]) bool
}

// color represents the color of a node in the red-black tree.
type color bool

// direction represents the relationship between a parent and child node (left, right, or none).
type direction byte

// String returns a human-readable representation of the node color.
func (c color) String() string {
	switch c {
	case true:
		return "Black"
	default:
		return "Red"
	}
}

// String returns a human-readable representation of the direction.
func (d direction) String() string {
	switch d {
	case left:
		return "left"
	case right:
		return "right"
	case nodir:
		return "center"
	default:
		return "not recognized"
	}
}

const (
	// black and red represent the two possible node colors in a red-black tree.
	// Black is represented as true; nil nodes are considered black.
	black, red color = true, false

	left direction = iota
	right
	nodir
)

// rbtNode represents a single node in the red-black tree.
type rbtNode[T any] struct {
	key    T
	color  color
	left   *rbtNode[T]
	right  *rbtNode[T]
	parent *rbtNode[T]
}

// String returns a string representation of the node showing its key and color.
func (n *rbtNode[T]) String() string {
	return fmt.Sprintf("(%#v : %s)", n.key, n.color)
}

// redBlackTree is an OrderedTree backed by a red-black tree.
//
// Red-black trees are self-balancing binary search trees that maintain the following properties:
//  1. Every node is either red or black.
//  2. The root is black.
//  3. All leaves (nil) are black.
//  4. If a node is red, then both its children are black (no two red nodes in a row).
//  5. Every path from a node to its descendant nil nodes contains the same number of black nodes.
//
// These properties keep the height within 2*log2(n+1), so insertion, removal and
// lookup are O(log n). The algorithms follow "Introduction to Algorithms" (CLRS).
//
// Equal keys are allowed. Insertion descends to the right on ties, so equal keys
// appear in the in-order sequence in the order they were inserted.
type redBlackTree[T any] struct {
	root  *rbtNode[T]
	size  int
	order compare.Func[T]
}

// NewRedBlackTree creates a new empty red-black tree ordered by order.
func NewRedBlackTree[T any](order compare.Func[T]) OrderedTree[T] {
	return &redBlackTree[T]{order: order}
}

// Insert adds a value and rebalances with fixupPut.
// Time complexity: O(log n).
func (r *redBlackTree[T]) Insert(value T) {
	r.size++

	if r.root == nil {
		r.root = &rbtNode[T]{key: value, color: black}

		return
	}

	parent, dir := r.insertionPoint(value)
	newNode := &rbtNode[T]{key: value, parent: parent}

	switch dir {
	case left:
		parent.left = newNode
	case right, nodir:
		parent.right = newNode
	}

	r.fixupPut(newNode)
}

// RemoveByValue deletes the leftmost node equal to value.
// Time complexity: O(log n).
func (r *redBlackTree[T]) RemoveByValue(value T) optional.Value[T] {
	z := r.firstEqual(value) //nolint:varnamelen // Standard red-black tree variable names from CLRS
	if z == nil {
		return optional.None[T]()
	}

	r.deleteNode(z)
	r.size--

	return optional.Some(z.key)
}

// Contains checks if an element equal to value exists.
// Time complexity: O(log n).
func (r *redBlackTree[T]) Contains(value T) bool {
	return r.firstEqual(value) != nil
}

// Clear drops the whole tree.
// Time complexity: O(1).
func (r *redBlackTree[T]) Clear() {
	r.root = nil
	r.size = 0
}

// Len returns the number of stored entries.
func (r *redBlackTree[T]) Len() int {
	return r.size
}

// seqVisitor is a visitor implementation that yields elements to an iterator function.
type seqVisitor[T any] struct {
	yield func(T) bool
}

// Visit performs an in-order traversal, yielding each element to the iterator function.
// Traversal stops early if the yield function returns false.
func (s *seqVisitor[T]) Visit(node *rbtNode[T]) bool {
	if node == nil {
		return true
	}

	if !s.Visit(node.left) {
		return false
	}

	if !s.yield(node.key) {
		return false
	}

	return s.Visit(node.right)
}

// InOrder returns an iterator that yields elements in ascending order.
func (r *redBlackTree[T]) InOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		r.walk(&seqVisitor[T]{yield: yield})
	}
}

// walk performs a traversal of the tree using the provided visitor.
func (r *redBlackTree[T]) walk(visitor visitor[T]) {
	visitor.Visit(r.root)
}

// insertionPoint finds the parent under which value should be attached, and on which side.
// Ties go right so that a new entry lands after the existing equal entries.
func (r *redBlackTree[T]) insertionPoint(value T) (*rbtNode[T], direction) {
	var (
		parent *rbtNode[T]
		dir    = nodir
	)

	for this := r.root; this != nil; {
		parent = this

		if r.order(value, this.key) < 0 {
			this, dir = this.left, left
		} else {
			this, dir = this.right, right
		}
	}

	return parent, dir
}

// firstEqual returns the leftmost node equal to value, or nil.
// Because ties are inserted to the right, this is the earliest inserted one.
func (r *redBlackTree[T]) firstEqual(value T) *rbtNode[T] {
	var found *rbtNode[T]

	for this := r.root; this != nil; {
		c := r.order(value, this.key)

		switch {
		case c < 0:
			this = this.left
		case c > 0:
			this = this.right
		default:
			found = this
			this = this.left
		}
	}

	return found
}

// deleteNode unlinks z from the tree.
//
// The algorithm follows CLRS chapter 13:
//  1. Identify the node that will be moved or removed (y)
//  2. Track y's original color and the node that takes y's place (x), along with x's parent
//  3. Perform the deletion using transplant operations
//  4. If a black node was removed, rebalance the tree with fixupDelete
//
// x may be nil, which is why its parent is tracked separately.
//
//nolint:varnamelen // Standard red-black tree variable names from CLRS
func (r *redBlackTree[T]) deleteNode(z *rbtNode[T]) {
	y := z
	yOriginalColor := y.color

	var x, xParent *rbtNode[T]

	switch {
	case z.left == nil:
		x, xParent = z.right, z.parent
		r.transplant(z, z.right)
	case z.right == nil:
		x, xParent = z.left, z.parent
		r.transplant(z, z.left)
	default:
		y = getMinimum(z.right)
		yOriginalColor = y.color
		x = y.right

		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			r.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}

		r.transplant(z, y)

		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	z.left, z.right, z.parent = nil, nil, nil

	if yOriginalColor == black {
		r.fixupDelete(x, xParent)
	}
}

// rotateRight performs a right rotation around node y.
//
// Before:        y              After:         x
//
//	   / \                           / \
//	  x   c                         a   y
//	 / \              =>               / \
//	a   b                            b   c
//
//nolint:varnamelen,dupword // Standard red-black tree variable names; ASCII diagram
func (r *redBlackTree[T]) rotateRight(y *rbtNode[T]) {
	if y == nil || y.left == nil {
		return
	}

	x := y.left
	y.left = x.right

	if x.right != nil {
		x.right.parent = y
	}

	x.parent = y.parent

	switch {
	case y.parent == nil:
		r.root = x
	case y == y.parent.left:
		y.parent.left = x
	default:
		y.parent.right = x
	}

	x.right = y
	y.parent = x
}

// rotateLeft performs a left rotation around node x.
//
// Before:                       After:
//
//	  x                             y
//	 / \                           / \
//	a   y                         x   c
//	   / \            =>         / \
//	  b   c                     a   b
//
//nolint:varnamelen // Standard red-black tree variable names
func (r *redBlackTree[T]) rotateLeft(x *rbtNode[T]) {
	if x == nil || x.right == nil {
		return
	}

	y := x.right
	x.right = y.left

	if y.left != nil {
		y.left.parent = x
	}

	y.parent = x.parent

	switch {
	case x.parent == nil:
		r.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}

	y.left = x
	x.parent = y
}

// transplant replaces subtree rooted at u with subtree rooted at v.
// The parent pointers are updated, but v's children are not modified.
func (r *redBlackTree[T]) transplant(u *rbtNode[T], v *rbtNode[T]) {
	switch {
	case u.parent == nil:
		r.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}

	if v != nil {
		v.parent = u.parent
	}
}

// fixupPut restores red-black tree properties after insertion.
//
// New nodes are red, which can create two consecutive red nodes. The cases depend
// on the color of the uncle node (y):
//
//	Case 1: Uncle is red → Recolor parent, uncle, and grandparent
//	Case 2: Uncle is black and z is a "middle child" → Rotate to convert to Case 3
//	Case 3: Uncle is black and z is an "outer child" → Rotate and recolor
//
//nolint:varnamelen // Standard red-black tree variable names
func (r *redBlackTree[T]) fixupPut(z *rbtNode[T]) {
	for isRed(z.parent) {
		grandparent := z.parent.parent

		if z.parent == grandparent.left {
			y := grandparent.right
			if isRed(y) {
				z.parent.color = black
				y.color = black
				grandparent.color = red
				z = grandparent

				continue
			}

			if z == z.parent.right {
				z = z.parent
				r.rotateLeft(z)
			}

			z.parent.color = black
			z.parent.parent.color = red
			r.rotateRight(z.parent.parent)
		} else {
			y := grandparent.left
			if isRed(y) {
				z.parent.color = black
				y.color = black
				grandparent.color = red
				z = grandparent

				continue
			}

			if z == z.parent.left {
				z = z.parent
				r.rotateRight(z)
			}

			z.parent.color = black
			z.parent.parent.color = red
			r.rotateLeft(z.parent.parent)
		}
	}

	r.root.color = black
}

// fixupDelete restores red-black tree properties after a black node was removed.
//
// x carries an "extra black" that is pushed up the tree until x is red (absorb it)
// or x becomes the root. For each iteration there are four cases based on x's sibling (w):
//
//	Case 1: Sibling w is red → Rotate and recolor to reach Case 2, 3, or 4
//	Case 2: Sibling w is black with two black children → Push black up the tree
//	Case 3: Sibling w is black with a red near child and black far child → Convert to Case 4
//	Case 4: Sibling w is black with a red far child → Rotate, recolor, and terminate
//
// x may be nil (a removed leaf), so the parent is passed alongside it. A doubly
// black x always has a non-nil sibling, since the sibling's subtree must have
// black height of at least one.
//
//nolint:varnamelen,dupl,cyclop // Standard red-black tree variable names; symmetric cases
func (r *redBlackTree[T]) fixupDelete(x *rbtNode[T], parent *rbtNode[T]) {
	for x != r.root && !isRed(x) {
		if x == parent.left {
			w := parent.right
			if isRed(w) {
				w.color = black
				parent.color = red
				r.rotateLeft(parent)
				w = parent.right
			}

			if !isRed(w.left) && !isRed(w.right) {
				w.color = red
				x, parent = parent, parent.parent

				continue
			}

			if !isRed(w.right) {
				w.left.color = black
				w.color = red
				r.rotateRight(w)
				w = parent.right
			}

			w.color = parent.color
			parent.color = black
			w.right.color = black
			r.rotateLeft(parent)
			x, parent = r.root, nil
		} else {
			w := parent.left
			if isRed(w) {
				w.color = black
				parent.color = red
				r.rotateRight(parent)
				w = parent.left
			}

			if !isRed(w.left) && !isRed(w.right) {
				w.color = red
				x, parent = parent, parent.parent

				continue
			}

			if !isRed(w.left) {
				w.right.color = black
				w.color = red
				r.rotateLeft(w)
				w = parent.left
			}

			w.color = parent.color
			parent.color = black
			w.left.color = black
			r.rotateRight(parent)
			x, parent = r.root, nil
		}
	}

	if x != nil {
		x.color = black
	}
}

// isRed checks if a node is red. Nil nodes are black.
func isRed[T any](n *rbtNode[T]) bool {
	if n == nil {
		return false
	}

	return n.color == red
}

// getMinimum finds the node with the smallest key in the subtree rooted at x.
func getMinimum[T any](x *rbtNode[T]) *rbtNode[T] {
	for x.left != nil {
		x = x.left
	}

	return x
}
