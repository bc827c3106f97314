// Package iteration declares the iteration protocol of the module.
//
// The protocol has two roles.
// An Iterable is anything that can hand out a fresh traversal cursor on request.
// An Iterator is such a cursor: a single-pass, single-owner value
// that produces the next element on demand until the sequence is exhausted.
//
// Exhaustion is not an error.
// It is signalled by Next returning false while Err stays nil,
// and it is final: once Next returned false, it keeps returning false.
package iteration

import "io"

// Iterator define a separate object that encapsulates accessing and traversing an aggregate object.
// Clients use an iterator to access and traverse an aggregate without knowing its representation (data structures).
// Interface design inspirited by https://golang.org/pkg/encoding/json/#Decoder
// https://en.wikipedia.org/wiki/Iterator_pattern
//
// An Iterator is owned by a single consumer.
// Sharing one Iterator between two independent consumers makes them observe
// disjoint, order dependent subsets of the sequence; there is no duplication
// protection and no reset.
type Iterator[V any] interface {
	// Next will ensure that Value returns the next item when executed.
	// If the next value is not retrievable, Next should return false and ensure Err() will return the error cause.
	// After the first false, every subsequent call must return false as well.
	Next() bool
	// Value returns the current value in the iterator.
	// The action should be repeatable without side effects.
	Value() V
	// Closer is required to make it able to cancel iterators where resources are being used behind the scene,
	// for all other cases where the underlying io is handled on a higher level, it should simply return nil.
	// Close requests early termination and must be idempotent.
	io.Closer
	// Err return the error cause.
	Err() error
}

// Iterator2 is the pairwise variant of Iterator,
// used by adapters that produce key-value or index-element pairs.
type Iterator2[K, V any] interface {
	// Next will ensure that Value returns the next pair when executed.
	Next() bool
	// Value returns the current pair in the iterator.
	Value() (K, V)
	io.Closer
	// Err return the error cause.
	Err() error
}

// Iterable is a value that can produce a new Iterator on request.
//
// Iter must return a brand-new, independent cursor positioned before the
// first element, without any side effect on the Iterable itself.
// An Iterable may be traversed any number of times;
// traversals observe the same sequence as long as the underlying data
// is unchanged between them.
type Iterable[V any] interface {
	Iter() Iterator[V]
}

// Iterable2 is the pairwise variant of Iterable.
type Iterable2[K, V any] interface {
	Iter() Iterator2[K, V]
}

// AsIterable wraps an Iterator as a trivial Iterable whose Iter returns the
// cursor itself. This makes any cursor usable where an Iterable is expected,
// but the wrapped cursor keeps its position state:
// handing the same wrapped cursor to two loops shares progress between them,
// there are no independent traversals.
func AsIterable[V any](itr Iterator[V]) Iterable[V] {
	return selfIterable[V]{Iterator: itr}
}

type selfIterable[V any] struct{ Iterator[V] }

func (i selfIterable[V]) Iter() Iterator[V] { return i.Iterator }

// AsIterable2 is the pairwise variant of AsIterable.
func AsIterable2[K, V any](itr Iterator2[K, V]) Iterable2[K, V] {
	return selfIterable2[K, V]{Iterator2: itr}
}

type selfIterable2[K, V any] struct{ Iterator2[K, V] }

func (i selfIterable2[K, V]) Iter() Iterator2[K, V] { return i.Iterator2 }

// Func adapts a produce-next closure into an Iterator.
// The closure reports false when the sequence is exhausted;
// after the first false it is not called again.
func Func[V any](next func() (V, bool)) Iterator[V] {
	return &funcIterator[V]{next: next}
}

type funcIterator[V any] struct {
	next func() (V, bool)

	value V
	done  bool
}

func (i *funcIterator[V]) Next() bool {
	if i.done {
		return false
	}
	v, ok := i.next()
	if !ok {
		i.done = true
		return false
	}
	i.value = v
	return true
}

func (i *funcIterator[V]) Value() V   { return i.value }
func (i *funcIterator[V]) Err() error { return nil }

func (i *funcIterator[V]) Close() error {
	i.done = true
	return nil
}

// Func2 is the pairwise variant of Func.
func Func2[K, V any](next func() (K, V, bool)) Iterator2[K, V] {
	return &funcIterator2[K, V]{next: next}
}

type funcIterator2[K, V any] struct {
	next func() (K, V, bool)

	key   K
	value V
	done  bool
}

func (i *funcIterator2[K, V]) Next() bool {
	if i.done {
		return false
	}
	k, v, ok := i.next()
	if !ok {
		i.done = true
		return false
	}
	i.key, i.value = k, v
	return true
}

func (i *funcIterator2[K, V]) Value() (K, V) { return i.key, i.value }
func (i *funcIterator2[K, V]) Err() error    { return nil }

func (i *funcIterator2[K, V]) Close() error {
	i.done = true
	return nil
}

// IterableFunc enables using a cursor factory function as an Iterable.
type IterableFunc[V any] func() Iterator[V]

func (fn IterableFunc[V]) Iter() Iterator[V] { return fn() }

// IterableFunc2 enables using a cursor factory function as an Iterable2.
type IterableFunc2[K, V any] func() Iterator2[K, V]

func (fn IterableFunc2[K, V]) Iter() Iterator2[K, V] { return fn() }
