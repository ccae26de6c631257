package tree

import (
	"cmp"

	"github.com/amp-labs/amp-sortedlist/compare"
	"github.com/anacrolix/multiless"
)

// seqItem is how the B-tree backends store values. The B-tree libraries treat
// equal items as the same key, so every insertion gets a sequence number that
// breaks ties. Sequence numbers start at 1; a probe with seq 0 therefore sorts
// before every stored item equal to its value.
type seqItem[T any] struct {
	value T
	seq   uint64
}

// itemOrder orders items by value, then by insertion sequence.
func itemOrder[T any](order compare.Func[T]) func(a, b seqItem[T]) int {
	return func(a, b seqItem[T]) int {
		return multiless.New().
			Cmp(order(a.value, b.value)).
			Cmp(cmp.Compare(a.seq, b.seq)).
			OrderingInt()
	}
}

// itemLess is itemOrder as a strict less-than predicate.
func itemLess[T any](order compare.Func[T]) func(a, b seqItem[T]) bool {
	ord := itemOrder(order)

	return func(a, b seqItem[T]) bool {
		return ord(a, b) < 0
	}
}

// probe returns the search key that sorts before all entries equal to value.
func probe[T any](value T) seqItem[T] {
	return seqItem[T]{value: value}
}

// sequencer hands out insertion sequence numbers.
type sequencer struct {
	next uint64
}

func (s *sequencer) tag() uint64 {
	s.next++

	return s.next
}

func (s *sequencer) reset() {
	s.next = 0
}
