package iterkit

import (
	"go.llib.dev/iterate/port/iteration"
)

// FromSlice returns an Iterable view of a slice.
//
// Iteration order is the slice's index order.
// Every Iter call returns a fresh independent cursor,
// so the result can be traversed any number of times.
// The cursor reads the backing array directly, it makes no copy.
func FromSlice[V any](vs []V) iteration.Iterable[V] {
	return iteration.IterableFunc[V](func() iteration.Iterator[V] {
		return &sliceIter[V]{slice: vs}
	})
}

type sliceIter[V any] struct {
	slice []V

	index  int
	value  V
	closed bool
}

func (i *sliceIter[V]) Next() bool {
	if i.closed {
		return false
	}
	if len(i.slice) <= i.index {
		return false
	}
	i.value = i.slice[i.index]
	i.index++
	return true
}

func (i *sliceIter[V]) Value() V { return i.value }

func (i *sliceIter[V]) Err() error { return nil }

func (i *sliceIter[V]) Close() error {
	i.closed = true
	return nil
}

// FromMap returns a pairwise Iterable view of a map.
//
// Iteration order is unspecified and may differ between traversals,
// the same way ranging over a Go map is unordered.
// Each cursor snapshots the key-value pairs at acquisition time,
// so mutating the map mid-traversal does not disturb an already acquired cursor.
func FromMap[K comparable, V any](m map[K]V) iteration.Iterable2[K, V] {
	return iteration.IterableFunc2[K, V](func() iteration.Iterator2[K, V] {
		var pairs = make([]KV[K, V], 0, len(m))
		for k, v := range m {
			pairs = append(pairs, KV[K, V]{K: k, V: v})
		}
		return &pairIter[K, V]{pairs: pairs}
	})
}

type pairIter[K, V any] struct {
	pairs []KV[K, V]

	index  int
	key    K
	value  V
	closed bool
}

func (i *pairIter[K, V]) Next() bool {
	if i.closed {
		return false
	}
	if len(i.pairs) <= i.index {
		return false
	}
	kv := i.pairs[i.index]
	i.key, i.value = kv.K, kv.V
	i.index++
	return true
}

func (i *pairIter[K, V]) Value() (K, V) { return i.key, i.value }

func (i *pairIter[K, V]) Err() error { return nil }

func (i *pairIter[K, V]) Close() error {
	i.closed = true
	return nil
}

// Enumerate pairs each element of the source traversal with its zero based index.
// The count restarts at zero for every traversal.
func Enumerate[V any](i iteration.Iterable[V]) iteration.Iterable2[int, V] {
	return iteration.IterableFunc2[int, V](func() iteration.Iterator2[int, V] {
		return &enumIter[V]{src: i.Iter(), index: -1}
	})
}

type enumIter[V any] struct {
	src   iteration.Iterator[V]
	index int
}

func (i *enumIter[V]) Next() bool {
	if !i.src.Next() {
		return false
	}
	i.index++
	return true
}

func (i *enumIter[V]) Value() (int, V) { return i.index, i.src.Value() }
func (i *enumIter[V]) Err() error      { return i.src.Err() }
func (i *enumIter[V]) Close() error    { return i.src.Close() }

// Reverse will reverse the iteration direction.
//
// # WARNING
//
// It does not work with infinite sources,
// as each cursor acquisition collects all values of the source
// before it can produce them back to front.
func Reverse[V any](i iteration.Iterable[V]) iteration.Iterable[V] {
	return iteration.IterableFunc[V](func() iteration.Iterator[V] {
		vs, err := Collect(i)
		return &reverseIter[V]{slice: vs, index: len(vs) - 1, err: err}
	})
}

type reverseIter[V any] struct {
	slice []V
	err   error

	index  int
	value  V
	closed bool
}

func (i *reverseIter[V]) Next() bool {
	if i.closed || i.err != nil {
		return false
	}
	if i.index < 0 {
		return false
	}
	i.value = i.slice[i.index]
	i.index--
	return true
}

func (i *reverseIter[V]) Value() V   { return i.value }
func (i *reverseIter[V]) Err() error { return i.err }

func (i *reverseIter[V]) Close() error {
	i.closed = true
	return nil
}

// FromFunc drives a zero-argument function until it returns the sentinel value.
// The sentinel itself is not produced, and the function is not called again
// after it returned the sentinel once.
//
// The function usually closes over mutable state (a pop from a stack, a read from a source),
// so while every Iter call returns a fresh cursor,
// the traversals share whatever state the function itself holds.
func FromFunc[V comparable](fn func() V, sentinel V) iteration.Iterable[V] {
	return iteration.IterableFunc[V](func() iteration.Iterator[V] {
		return &funcIter[V]{fn: fn, sentinel: sentinel}
	})
}

type funcIter[V comparable] struct {
	fn       func() V
	sentinel V

	value V
	done  bool
}

func (i *funcIter[V]) Next() bool {
	if i.done {
		return false
	}
	v := i.fn()
	if v == i.sentinel {
		i.done = true
		return false
	}
	i.value = v
	return true
}

func (i *funcIter[V]) Value() V   { return i.value }
func (i *funcIter[V]) Err() error { return nil }

func (i *funcIter[V]) Close() error {
	i.done = true
	return nil
}

// IntRange returns an Iterable that will range between the specified begin and the end int, both inclusive.
func IntRange(begin, end int) iteration.Iterable[int] {
	return iteration.IterableFunc[int](func() iteration.Iterator[int] {
		return &intRangeIter{current: begin, end: end}
	})
}

type intRangeIter struct {
	current int
	end     int

	value  int
	closed bool
}

func (i *intRangeIter) Next() bool {
	if i.closed {
		return false
	}
	if i.end < i.current {
		return false
	}
	i.value = i.current
	i.current++
	return true
}

func (i *intRangeIter) Value() int { return i.value }
func (i *intRangeIter) Err() error { return nil }

func (i *intRangeIter) Close() error {
	i.closed = true
	return nil
}

// Empty returns an Iterable whose cursors are exhausted from the start.
// It is used to represent a nil result with the Null object pattern.
func Empty[V any]() iteration.Iterable[V] {
	return iteration.IterableFunc[V](func() iteration.Iterator[V] {
		return emptyIter[V]{}
	})
}

type emptyIter[V any] struct{}

func (emptyIter[V]) Next() bool   { return false }
func (emptyIter[V]) Value() V     { var zero V; return zero }
func (emptyIter[V]) Err() error   { return nil }
func (emptyIter[V]) Close() error { return nil }

// SingleValue creates an Iterable whose traversal produces one single element.
func SingleValue[V any](v V) iteration.Iterable[V] {
	return FromSlice([]V{v})
}
