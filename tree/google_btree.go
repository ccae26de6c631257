package tree

import (
	"iter"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/optional"
	"github.com/google/btree"
)

// googleBTree is an OrderedTree backed by github.com/google/btree.
type googleBTree[T any] struct {
	tree  *btree.BTreeG[seqItem[T]]
	order compare.Func[T]
	seq   sequencer
}

func newGoogleBTree[T any](order compare.Func[T], degree int) *googleBTree[T] {
	return &googleBTree[T]{
		tree:  btree.NewG(degree, btree.LessFunc[seqItem[T]](itemLess(order))),
		order: order,
	}
}

func (g *googleBTree[T]) Insert(value T) {
	g.tree.ReplaceOrInsert(seqItem[T]{value: value, seq: g.seq.tag()})
}

// first returns the earliest-inserted entry equal to value.
func (g *googleBTree[T]) first(value T) optional.Value[seqItem[T]] {
	found := optional.None[seqItem[T]]()

	g.tree.AscendGreaterOrEqual(probe(value), func(item seqItem[T]) bool {
		if g.order(item.value, value) == 0 {
			found = optional.Some(item)
		}

		return false
	})

	return found
}

func (g *googleBTree[T]) RemoveByValue(value T) optional.Value[T] {
	item, ok := g.first(value).Get()
	if !ok {
		return optional.None[T]()
	}

	removed, ok := g.tree.Delete(item)

	return optional.FromPair(removed.value, ok)
}

func (g *googleBTree[T]) Contains(value T) bool {
	return g.first(value).NonEmpty()
}

func (g *googleBTree[T]) Clear() {
	g.tree.Clear(false)
	g.seq.reset()
}

func (g *googleBTree[T]) InOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		g.tree.Ascend(func(item seqItem[T]) bool {
			return yield(item.value)
		})
	}
}

func (g *googleBTree[T]) Len() int {
	return g.tree.Len()
}
