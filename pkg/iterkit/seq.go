package iterkit

import (
	"context"
	"iter"

	"go.llib.dev/frameless/pkg/tasker"

	"go.llib.dev/iterate/port/iteration"
)

// ToSeq turns an Iterable into a push style iter.Seq,
// usable directly in a for range statement.
//
// Every call of the returned sequence acquires a fresh cursor,
// and closes it when the range is left.
// A cursor failure is not observable through ToSeq; use ToSeqE when the source can fail.
func ToSeq[V any](i iteration.Iterable[V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		itr := i.Iter()
		defer itr.Close()
		for itr.Next() {
			if !yield(itr.Value()) {
				return
			}
		}
	}
}

// ToSeqE turns an Iterable into an iter.Seq2[V, error],
// where a cursor failure is produced as the final element of the sequence.
func ToSeqE[V any](i iteration.Iterable[V]) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		itr := i.Iter()
		defer itr.Close()
		for itr.Next() {
			if !yield(itr.Value(), nil) {
				return
			}
		}
		if err := itr.Err(); err != nil {
			var zero V
			yield(zero, err)
		}
	}
}

// ToSeq2 turns a pairwise Iterable into a push style iter.Seq2.
func ToSeq2[K, V any](i iteration.Iterable2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		itr := i.Iter()
		defer itr.Close()
		for itr.Next() {
			if !yield(itr.Value()) {
				return
			}
		}
	}
}

// FromSeq turns a push style iter.Seq into an Iterable.
//
// Every Iter call starts the sequence from its beginning with a fresh pull cursor;
// whether repeated traversals observe the same values depends on the sequence
// (a single use sequence yields values only for the first cursor).
// Closing the cursor releases the underlying pull iterator.
func FromSeq[V any](s iter.Seq[V]) iteration.Iterable[V] {
	return iteration.IterableFunc[V](func() iteration.Iterator[V] {
		next, stop := iter.Pull(s)
		return &pullIter[V]{next: next, stop: stop}
	})
}

type pullIter[V any] struct {
	next func() (V, bool)
	stop func()

	value V
	done  bool
}

func (i *pullIter[V]) Next() bool {
	if i.done {
		return false
	}
	v, ok := i.next()
	if !ok {
		i.done = true
		i.stop()
		return false
	}
	i.value = v
	return true
}

func (i *pullIter[V]) Value() V   { return i.value }
func (i *pullIter[V]) Err() error { return nil }

func (i *pullIter[V]) Close() error {
	if i.done {
		return nil
	}
	i.done = true
	i.stop()
	return nil
}

// FromSeq2 turns a push style iter.Seq2 into a pairwise Iterable.
func FromSeq2[K, V any](s iter.Seq2[K, V]) iteration.Iterable2[K, V] {
	return iteration.IterableFunc2[K, V](func() iteration.Iterator2[K, V] {
		next, stop := iter.Pull2(s)
		return &pullIter2[K, V]{next: next, stop: stop}
	})
}

type pullIter2[K, V any] struct {
	next func() (K, V, bool)
	stop func()

	key   K
	value V
	done  bool
}

func (i *pullIter2[K, V]) Next() bool {
	if i.done {
		return false
	}
	k, v, ok := i.next()
	if !ok {
		i.done = true
		i.stop()
		return false
	}
	i.key, i.value = k, v
	return true
}

func (i *pullIter2[K, V]) Value() (K, V) { return i.key, i.value }
func (i *pullIter2[K, V]) Err() error    { return nil }

func (i *pullIter2[K, V]) Close() error {
	if i.done {
		return nil
	}
	i.done = true
	i.stop()
	return nil
}

// FromChan creates an Iterable out of a channel.
//
// A cursor produces the values received from the channel until the channel is closed.
// All cursors receive from the same channel, thus they compete for its values.
func FromChan[V any](ch <-chan V) iteration.Iterable[V] {
	return iteration.IterableFunc[V](func() iteration.Iterator[V] {
		return &chanIter[V]{ch: ch}
	})
}

type chanIter[V any] struct {
	ch <-chan V

	value V
	done  bool
}

func (i *chanIter[V]) Next() bool {
	if i.done || i.ch == nil {
		return false
	}
	v, ok := <-i.ch
	if !ok {
		i.done = true
		return false
	}
	i.value = v
	return true
}

func (i *chanIter[V]) Value() V   { return i.value }
func (i *chanIter[V]) Err() error { return nil }

func (i *chanIter[V]) Close() error {
	i.done = true
	return nil
}

// ToChan feeds one traversal of the iterable into a channel from a background task.
// The channel is closed when the traversal finished or when cancel is called.
func ToChan[V any](i iteration.Iterable[V]) (_ <-chan V, cancel func()) {
	var ch = make(chan V)
	var bg tasker.JobGroup[tasker.FireAndForget]
	jg := bg.Background(context.Background(), tasker.ToTask(func(ctx context.Context) {
		defer close(ch)
		itr := i.Iter()
		defer itr.Close()
	feed:
		for itr.Next() {
			select {
			case <-ctx.Done():
				break feed
			case ch <- itr.Value():
				continue feed
			}
		}
	}))
	return ch, func() { _ = jg.Stop() }
}
