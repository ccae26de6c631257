package sortedlist

import (
	"fmt"
	"iter"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/logger"
	"github.com/amp-labs/amp-sortedlist/optional"
	"github.com/amp-labs/amp-sortedlist/sortable"
	"github.com/amp-labs/amp-sortedlist/tree"
)

// New creates an empty list of a Sortable type.
//
// Example:
//
//	list, err := sortedlist.New[sortable.Int](sortedlist.WithTree(tree.TidwallBTree))
//	list.Add(sortable.Int(3))
func New[T sortable.Sortable[T]](opts ...Option) (SortedList[T], error) {
	return NewFunc(sortable.CompareFunc[T](), opts...)
}

// NewFunc creates an empty list ordered by a three-way comparison, such as
// cmp.Compare[int] or strings.Compare.
func NewFunc[T any](order compare.Func[T], opts ...Option) (SortedList[T], error) {
	cfg := newConfig(opts)

	t, err := tree.New(cfg.kind, order, cfg.treeOpts...)
	if err != nil {
		return nil, err
	}

	return FromTree(t, order), nil
}

// FromTree creates a list on top of an existing tree, which the list owns
// from then on. order must be the ordering the tree was built with.
func FromTree[T any](t tree.OrderedTree[T], order compare.Func[T]) SortedList[T] {
	return &treeList[T]{
		tree:  t,
		order: order,
		count: t.Len(),
	}
}

// Of creates a red-black backed list holding entries.
func Of[T sortable.Sortable[T]](entries ...T) SortedList[T] {
	order := sortable.CompareFunc[T]()
	list := FromTree(tree.NewRedBlackTree(order), order)

	for _, entry := range entries {
		list.Add(entry)
	}

	return list
}

// treeList is the tree-backed SortedList. count mirrors the tree's size and
// version is bumped on every mutation so Seq can detect interference.
type treeList[T any] struct {
	tree    tree.OrderedTree[T]
	order   compare.Func[T]
	count   int
	version uint64
}

var _ SortedList[int] = (*treeList[int])(nil)

func (l *treeList[T]) Add(entry T) {
	l.tree.Insert(entry)
	l.count++
	l.version++
}

func (l *treeList[T]) Remove(entry T) bool {
	if l.tree.RemoveByValue(entry).Empty() {
		return false
	}

	l.count--
	l.version++

	return true
}

func (l *treeList[T]) RemoveAt(position int) (T, error) {
	entry, err := l.GetEntryAt(position)
	if err != nil {
		return entry, err
	}

	removed := l.tree.RemoveByValue(entry)
	if removed.NonEmpty() {
		l.count--
		l.version++
	}

	return entry, nil
}

func (l *treeList[T]) GetPosition(entry T) int {
	pos := 1

	for visited := range l.tree.InOrder() {
		c := l.order(entry, visited)

		switch {
		case c == 0:
			return pos
		case c < 0:
			return -pos
		default:
			pos++
		}
	}

	return -(l.count + 1)
}

func (l *treeList[T]) GetEntryAt(position int) (T, error) {
	if err := l.checkPosition(position); err != nil {
		var zero T

		return zero, err
	}

	entry, ok := l.entryAt(position).Get()
	if !ok {
		// The tree holds fewer entries than count says.
		var zero T

		return zero, l.outOfRange(position)
	}

	return entry, nil
}

func (l *treeList[T]) entryAt(position int) optional.Value[T] {
	pos := 0

	for visited := range l.tree.InOrder() {
		pos++

		if pos == position {
			return optional.Some(visited)
		}
	}

	return optional.None[T]()
}

func (l *treeList[T]) checkPosition(position int) error {
	if position < 1 || position > l.count {
		return l.outOfRange(position)
	}

	return nil
}

func (l *treeList[T]) outOfRange(position int) error {
	return logger.AnnotateError(
		fmt.Errorf("%w: position %d, size %d", ErrOutOfRange, position, l.count),
		"position", position,
		"size", l.count)
}

func (l *treeList[T]) Contains(entry T) bool {
	return l.tree.Contains(entry)
}

func (l *treeList[T]) Size() int {
	return l.count
}

func (l *treeList[T]) IsEmpty() bool {
	return l.count == 0
}

func (l *treeList[T]) Clear() {
	l.tree.Clear()
	l.count = 0
	l.version++
}

func (l *treeList[T]) Entries() []T {
	out := make([]T, l.count)
	i := 0

	for visited := range l.tree.InOrder() {
		if i == len(out) {
			break
		}

		out[i] = visited
		i++
	}

	return out[:i]
}

func (l *treeList[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		start := l.version

		for visited := range l.tree.InOrder() {
			if !yield(visited) {
				return
			}

			if l.version != start {
				panic(ErrConcurrentModification)
			}
		}
	}
}
