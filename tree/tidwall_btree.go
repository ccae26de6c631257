package tree

import (
	"iter"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/optional"
	"github.com/tidwall/btree"
)

// tidwallBTree is an OrderedTree backed by github.com/tidwall/btree.
// The library's internal locking is turned off; callers serialize access.
type tidwallBTree[T any] struct {
	tree  *btree.BTreeG[seqItem[T]]
	order compare.Func[T]
	seq   sequencer
}

func newTidwallBTree[T any](order compare.Func[T], degree int) *tidwallBTree[T] {
	return &tidwallBTree[T]{
		tree: btree.NewBTreeGOptions(itemLess(order), btree.Options{
			NoLocks: true,
			Degree:  degree,
		}),
		order: order,
	}
}

func (tw *tidwallBTree[T]) Insert(value T) {
	tw.tree.Set(seqItem[T]{value: value, seq: tw.seq.tag()})
}

func (tw *tidwallBTree[T]) first(value T) optional.Value[seqItem[T]] {
	found := optional.None[seqItem[T]]()

	tw.tree.Ascend(probe(value), func(item seqItem[T]) bool {
		if tw.order(item.value, value) == 0 {
			found = optional.Some(item)
		}

		return false
	})

	return found
}

func (tw *tidwallBTree[T]) RemoveByValue(value T) optional.Value[T] {
	item, ok := tw.first(value).Get()
	if !ok {
		return optional.None[T]()
	}

	removed, ok := tw.tree.Delete(item)

	return optional.FromPair(removed.value, ok)
}

func (tw *tidwallBTree[T]) Contains(value T) bool {
	return tw.first(value).NonEmpty()
}

func (tw *tidwallBTree[T]) Clear() {
	tw.tree.Clear()
	tw.seq.reset()
}

func (tw *tidwallBTree[T]) InOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		tw.tree.Scan(func(item seqItem[T]) bool {
			return yield(item.value)
		})
	}
}

func (tw *tidwallBTree[T]) Len() int {
	return tw.tree.Len()
}
