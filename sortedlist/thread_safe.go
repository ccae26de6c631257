package sortedlist

import (
	"iter"
	"slices"
	"sync"
)

// NewThreadSafe wraps list so it can be shared between goroutines. Writers
// (Add, Remove, RemoveAt, Clear) take an exclusive lock and readers share a
// read lock. Wrapping a list that is already thread-safe returns it as is.
//
// Example:
//
//	list, _ := sortedlist.NewFunc(cmp.Compare[int])
//	shared := sortedlist.NewThreadSafe(list)
//	go shared.Add(4)
func NewThreadSafe[T any](list SortedList[T]) SortedList[T] {
	if list == nil {
		return nil
	}

	if tsl, ok := list.(*threadSafeList[T]); ok {
		return tsl
	}

	return &threadSafeList[T]{internal: list}
}

type threadSafeList[T any] struct {
	mutex    sync.RWMutex
	internal SortedList[T]
}

func (t *threadSafeList[T]) Add(entry T) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.internal.Add(entry)
}

func (t *threadSafeList[T]) Remove(entry T) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.Remove(entry)
}

func (t *threadSafeList[T]) RemoveAt(position int) (T, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.RemoveAt(position)
}

func (t *threadSafeList[T]) GetPosition(entry T) int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.GetPosition(entry)
}

func (t *threadSafeList[T]) GetEntryAt(position int) (T, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.GetEntryAt(position)
}

func (t *threadSafeList[T]) Contains(entry T) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Contains(entry)
}

func (t *threadSafeList[T]) Size() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Size()
}

func (t *threadSafeList[T]) IsEmpty() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.IsEmpty()
}

func (t *threadSafeList[T]) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.internal.Clear()
}

func (t *threadSafeList[T]) Entries() []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Entries()
}

// Seq iterates over a snapshot taken under the read lock, so the lock is not
// held while the caller's loop runs and later writes are not observed.
func (t *threadSafeList[T]) Seq() iter.Seq[T] {
	t.mutex.RLock()
	snapshot := t.internal.Entries()
	t.mutex.RUnlock()

	return slices.Values(snapshot)
}
