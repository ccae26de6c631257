package sortedlist

import (
	"errors"
	"iter"
	"log/slog"

	"github.com/amp-labs/amp-sortedlist/logger"
)

// NewInstrumented wraps list so that every operation is counted in
// sortedlist_operations_total and the size is published in
// sortedlist_entries, both labelled with name. Out-of-range rejections are
// logged at debug level. A nil log uses logger.Get().
func NewInstrumented[T any](list SortedList[T], name string, log *slog.Logger) SortedList[T] {
	if list == nil {
		return nil
	}

	if log == nil {
		log = logger.Get()
	}

	il := &instrumentedList[T]{
		internal: list,
		name:     name,
		log:      log.With("list", name),
	}

	il.publishSize()

	return il
}

type instrumentedList[T any] struct {
	internal SortedList[T]
	name     string
	log      *slog.Logger
}

func (i *instrumentedList[T]) observe(operation, outcome string) {
	operationsTotal.WithLabelValues(i.name, operation, outcome).Inc()
}

func (i *instrumentedList[T]) observeBool(operation string, ok bool) {
	if ok {
		i.observe(operation, outcomeOK)
	} else {
		i.observe(operation, outcomeMiss)
	}
}

func (i *instrumentedList[T]) observeErr(operation string, err error) {
	switch {
	case err == nil:
		i.observe(operation, outcomeOK)
	case errors.Is(err, ErrOutOfRange):
		i.observe(operation, outcomeOutOfRange)
		i.log.Debug("position rejected", "operation", operation, "error", err)
	default:
		i.observe(operation, "error")
		i.log.Warn("operation failed", "operation", operation, "error", err)
	}
}

func (i *instrumentedList[T]) publishSize() {
	entriesGauge.WithLabelValues(i.name).Set(float64(i.internal.Size()))
}

func (i *instrumentedList[T]) Add(entry T) {
	i.internal.Add(entry)
	i.observe("add", outcomeOK)
	i.publishSize()
}

func (i *instrumentedList[T]) Remove(entry T) bool {
	removed := i.internal.Remove(entry)
	i.observeBool("remove", removed)
	i.publishSize()

	return removed
}

func (i *instrumentedList[T]) RemoveAt(position int) (T, error) {
	entry, err := i.internal.RemoveAt(position)
	i.observeErr("remove_at", err)
	i.publishSize()

	return entry, err
}

func (i *instrumentedList[T]) GetPosition(entry T) int {
	pos := i.internal.GetPosition(entry)
	i.observeBool("get_position", pos > 0)

	return pos
}

func (i *instrumentedList[T]) GetEntryAt(position int) (T, error) {
	entry, err := i.internal.GetEntryAt(position)
	i.observeErr("get_entry_at", err)

	return entry, err
}

func (i *instrumentedList[T]) Contains(entry T) bool {
	found := i.internal.Contains(entry)
	i.observeBool("contains", found)

	return found
}

func (i *instrumentedList[T]) Size() int {
	return i.internal.Size()
}

func (i *instrumentedList[T]) IsEmpty() bool {
	return i.internal.IsEmpty()
}

func (i *instrumentedList[T]) Clear() {
	i.internal.Clear()
	i.observe("clear", outcomeOK)
	i.publishSize()
}

func (i *instrumentedList[T]) Entries() []T {
	i.observe("entries", outcomeOK)

	return i.internal.Entries()
}

func (i *instrumentedList[T]) Seq() iter.Seq[T] {
	i.observe("seq", outcomeOK)

	return i.internal.Seq()
}
