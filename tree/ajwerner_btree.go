package tree

import (
	"iter"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/amp-labs/amp-sortedlist/optional"
	"github.com/anacrolix/btree"
)

// ajwernerBTree is an OrderedTree backed by github.com/anacrolix/btree, a
// generic fork of github.com/ajwerner/btree.
type ajwernerBTree[T any] struct {
	set   btree.Set[seqItem[T]]
	order compare.Func[T]
	seq   sequencer
}

func newAjwernerBTree[T any](order compare.Func[T]) *ajwernerBTree[T] {
	return &ajwernerBTree[T]{
		set:   btree.MakeSet(itemOrder(order)),
		order: order,
	}
}

func (a *ajwernerBTree[T]) Insert(value T) {
	a.set.Upsert(seqItem[T]{value: value, seq: a.seq.tag()})
}

func (a *ajwernerBTree[T]) first(value T) optional.Value[seqItem[T]] {
	it := a.set.Iterator()

	it.SeekGE(probe(value))

	if !it.Valid() || a.order(it.Cur().value, value) != 0 {
		return optional.None[seqItem[T]]()
	}

	return optional.Some(it.Cur())
}

func (a *ajwernerBTree[T]) RemoveByValue(value T) optional.Value[T] {
	item, ok := a.first(value).Get()
	if !ok {
		return optional.None[T]()
	}

	if !a.set.Delete(item) {
		return optional.None[T]()
	}

	return optional.Some(item.value)
}

func (a *ajwernerBTree[T]) Contains(value T) bool {
	return a.first(value).NonEmpty()
}

func (a *ajwernerBTree[T]) Clear() {
	a.set = btree.MakeSet(itemOrder(a.order))
	a.seq.reset()
}

func (a *ajwernerBTree[T]) InOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := a.set.Iterator()
		for it.First(); it.Valid(); it.Next() {
			if !yield(it.Cur().value) {
				return
			}
		}
	}
}

func (a *ajwernerBTree[T]) Len() int {
	return a.set.Len()
}
