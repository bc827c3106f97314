// Package iterkit provides implementations and helpers for the iteration protocol.
//
// # Summary
//
// An Iterator's goal is to decouple the origin of the data from the consumer who uses that data.
// The package contains the cursor implementations for the common data sources (slice, map, channel, functions),
// the adapters that derive one traversal from another (Enumerate, Reverse, Map, Filter),
// and the glue towards the standard library's iter package.
//
// A traversal made with iterkit has the loop semantics of a for statement:
// the iterable expression is evaluated exactly once,
// one cursor is acquired from it,
// and the body runs once per produced element until exhaustion.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
package iterkit

import (
	"errors"

	"go.llib.dev/frameless/pkg/errorkit"

	"go.llib.dev/iterate/port/iteration"
)

// Break is a sentinel error which can be returned from an Each block
// to terminate the traversal early without reporting an error.
const Break errorkit.Error = "iterkit:break"

// Each acquires a single cursor from the iterable and runs fn once per element,
// in the cursor's order, until exhaustion.
//
// The iterable expression is evaluated exactly once; with an empty sequence fn runs zero times.
// When fn returns an error, the traversal stops and the error is returned,
// except for Break, which stops the traversal and reports success.
// The cursor is closed in every outcome.
func Each[V any](i iteration.Iterable[V], fn func(V) error) (rErr error) {
	itr := i.Iter()
	defer errorkit.Finish(&rErr, itr.Close)
	for itr.Next() {
		err := fn(itr.Value())
		if errors.Is(err, Break) {
			break
		}
		if err != nil {
			return err
		}
	}
	return itr.Err()
}

// Each2 is the pairwise variant of Each.
func Each2[K, V any](i iteration.Iterable2[K, V], fn func(K, V) error) (rErr error) {
	itr := i.Iter()
	defer errorkit.Finish(&rErr, itr.Close)
	for itr.Next() {
		err := fn(itr.Value())
		if errors.Is(err, Break) {
			break
		}
		if err != nil {
			return err
		}
	}
	return itr.Err()
}

// Collect drains a fresh cursor of the iterable into a slice.
func Collect[V any](i iteration.Iterable[V]) ([]V, error) {
	if i == nil {
		return nil, nil
	}
	return CollectIter(i.Iter())
}

// CollectIter drains the remainder of an already acquired cursor into a slice.
// The cursor is closed afterwards.
func CollectIter[V any](itr iteration.Iterator[V]) ([]V, error) {
	if itr == nil {
		return nil, nil
	}
	var vs = make([]V, 0)
	for itr.Next() {
		vs = append(vs, itr.Value())
	}
	var errs []error
	if err := itr.Err(); err != nil {
		errs = append(errs, err)
	}
	if err := itr.Close(); err != nil {
		errs = append(errs, err)
	}
	return vs, errorkit.Merge(errs...)
}

// KV is the element type of pairwise collection results.
type KV[K, V any] struct {
	K K
	V V
}

// Collect2 drains a fresh pairwise cursor of the iterable into a KV slice.
func Collect2[K, V any](i iteration.Iterable2[K, V]) ([]KV[K, V], error) {
	if i == nil {
		return nil, nil
	}
	itr := i.Iter()
	var kvs = make([]KV[K, V], 0)
	for itr.Next() {
		k, v := itr.Value()
		kvs = append(kvs, KV[K, V]{K: k, V: v})
	}
	var errs []error
	if err := itr.Err(); err != nil {
		errs = append(errs, err)
	}
	if err := itr.Close(); err != nil {
		errs = append(errs, err)
	}
	return kvs, errorkit.Merge(errs...)
}

// Count will iterate over and count the total iterations number.
//
// Good when all you want is to count all the elements in an iterable but don't want to do anything else.
func Count[V any](i iteration.Iterable[V]) (int, error) {
	var total int
	err := Each(i, func(V) error {
		total++
		return nil
	})
	return total, err
}

// First returns the first element of a fresh traversal.
// The ok result is false when the sequence is empty.
func First[V any](i iteration.Iterable[V]) (_ V, ok bool, _ error) {
	itr := i.Iter()
	if !itr.Next() {
		var zero V
		return zero, false, errorkit.Merge(itr.Err(), itr.Close())
	}
	v := itr.Value()
	return v, true, itr.Close()
}

// Last returns the final element of a fresh traversal.
// The ok result is false when the sequence is empty.
func Last[V any](i iteration.Iterable[V]) (_ V, ok bool, _ error) {
	var (
		last  V
		found bool
	)
	err := Each(i, func(v V) error {
		last = v
		found = true
		return nil
	})
	return last, found, err
}

// Map allows you to do additional transformation on the values.
// This is useful in cases where you have to alter the input value,
// or change the type all together.
//
// Map is lazy: nothing is transformed until a cursor of the result is driven,
// and every Iter call derives a fresh cursor from the source iterable.
// A Map / Filter chain over an iterable is the package's rendition of a generator expression.
func Map[To, From any](i iteration.Iterable[From], transform func(From) To) iteration.Iterable[To] {
	return iteration.IterableFunc[To](func() iteration.Iterator[To] {
		return &mapIter[To, From]{src: i.Iter(), transform: transform}
	})
}

type mapIter[To, From any] struct {
	src       iteration.Iterator[From]
	transform func(From) To

	value To
}

func (i *mapIter[To, From]) Next() bool {
	if !i.src.Next() {
		return false
	}
	i.value = i.transform(i.src.Value())
	return true
}

func (i *mapIter[To, From]) Value() To    { return i.value }
func (i *mapIter[To, From]) Err() error   { return i.src.Err() }
func (i *mapIter[To, From]) Close() error { return i.src.Close() }

// Filter keeps the elements of the source traversal for which the filter function reports true.
// Filter is lazy the same way Map is.
func Filter[V any](i iteration.Iterable[V], filter func(V) bool) iteration.Iterable[V] {
	return iteration.IterableFunc[V](func() iteration.Iterator[V] {
		return &filterIter[V]{src: i.Iter(), filter: filter}
	})
}

type filterIter[V any] struct {
	src    iteration.Iterator[V]
	filter func(V) bool

	value V
}

func (i *filterIter[V]) Next() bool {
	for i.src.Next() {
		if v := i.src.Value(); i.filter(v) {
			i.value = v
			return true
		}
	}
	return false
}

func (i *filterIter[V]) Value() V     { return i.value }
func (i *filterIter[V]) Err() error   { return i.src.Err() }
func (i *filterIter[V]) Close() error { return i.src.Close() }
