// Package datastruct contains container types that participate in the iteration protocol.
package datastruct

import (
	"go.llib.dev/iterate/port/iteration"
)

// Sizer is a container that knows how many elements it holds.
type Sizer interface {
	Len() int
}

// List is an insertion ordered, growable container.
//
// List is an Iterable: every Iter call returns a brand-new cursor positioned
// before the first element, and the List itself can be traversed any number of times.
// A cursor reads the container by index on demand,
// so mutation between traversals is observed by cursors acquired afterwards.
type List[V any] struct {
	values []V
}

// NewList creates a List holding the given values in order.
func NewList[V any](vs ...V) *List[V] {
	var l List[V]
	l.Append(vs...)
	return &l
}

// Append adds values to the end of the list.
func (l *List[V]) Append(vs ...V) {
	l.values = append(l.values, vs...)
}

// Len returns the number of elements the list currently holds.
func (l *List[V]) Len() int { return len(l.values) }

// Lookup returns the element at the given index.
func (l *List[V]) Lookup(index int) (V, bool) {
	if index < 0 || len(l.values) <= index {
		var zero V
		return zero, false
	}
	return l.values[index], true
}

// Set replaces the element at the given index,
// and reports whether the index was valid.
func (l *List[V]) Set(index int, v V) bool {
	if index < 0 || len(l.values) <= index {
		return false
	}
	l.values[index] = v
	return true
}

// ToSlice returns a copy of the list's content in insertion order.
func (l *List[V]) ToSlice() []V {
	var vs = make([]V, len(l.values))
	copy(vs, l.values)
	return vs
}

// Iter returns a new independent cursor over the list, in insertion order.
func (l *List[V]) Iter() iteration.Iterator[V] {
	return &listIter[V]{list: l}
}

type listIter[V any] struct {
	list *List[V]

	index  int
	value  V
	closed bool
}

func (i *listIter[V]) Next() bool {
	if i.closed {
		return false
	}
	if i.list.Len() <= i.index {
		return false
	}
	i.value = i.list.values[i.index]
	i.index++
	return true
}

func (i *listIter[V]) Value() V   { return i.value }
func (i *listIter[V]) Err() error { return nil }

func (i *listIter[V]) Close() error {
	i.closed = true
	return nil
}

var _ iteration.Iterable[any] = &List[any]{}
