// Package genkit provides generator backed iterators.
//
// A generator is an alternate way of producing an Iterator:
// instead of hand writing a cursor with explicit position fields,
// a suspendable function body is used.
// The body pauses at each Yield call, hands the yielded value to the consumer,
// and resumes from the exact same point on the next demand.
//
// A Generator satisfies the port/iteration Iterator protocol,
// and extends it with the capabilities that only make sense for a suspended body:
// resuming with an injected value (Send),
// resuming with an injected error (Throw),
// and requesting early termination (Close).
//
// The body runs on its own goroutine with a strict channel handoff,
// so at any moment either the consumer or the body is running, never both.
// Suspension is purely saved call state within one logical thread of control;
// nothing is scheduled implicitly.
//
// A Generator is a single-owner value.
// Abandoning a suspended generator without calling Close leaks its goroutine,
// the same way an unstopped pull iterator of the standard library iter package would.
package genkit

import (
	"errors"
	"iter"

	"go.llib.dev/frameless/pkg/errorkit"

	"go.llib.dev/iterate/port/iteration"
)

const (
	// ErrTerminate is the distinguished signal a generator body receives from its
	// paused Yield call when early termination was requested through Close.
	// The body may propagate it by returning it, or clean up and return nil;
	// both count as cooperative, quiet completion.
	ErrTerminate errorkit.Error = "genkit: generator termination requested"

	// ErrUncooperative is returned by Close when the generator body yielded
	// another value after the termination request instead of completing.
	ErrUncooperative errorkit.Error = "genkit: generator ignored the termination request"
)

// panicKill makes a Yield call abandon the body during teardown of an uncooperative generator.
const panicKill errorkit.Error = "genkit: generator coroutine kill"

// Generate creates a generator from a suspendable body.
//
// The body is not started until the first Next (or Throw) call.
// Each y.Yield(v) call suspends the body and produces v to the consumer;
// the error result of Yield is nil on a plain resume,
// the injected error on Throw,
// and ErrTerminate when Close requested early termination.
// When the body returns, the generator is exhausted;
// a non-nil return value is reported through Err.
func Generate[V any](body func(y *Yielder[V]) error) *Generator[V] {
	g := &Generator[V]{}
	g.coro.init(func(y *Yielder2[V, struct{}]) error {
		return body(&Yielder[V]{inner: y})
	})
	return g
}

// Generate2 creates a generator whose paused Yield call can also receive a value injected with Send.
func Generate2[V, S any](body func(y *Yielder2[V, S]) error) *Generator2[V, S] {
	g := &Generator2[V, S]{}
	g.coro.init(body)
	return g
}

// Generator is a generator backed Iterator.
//
// Its state machine is
// not-started -> suspended-at-yield-point <-> suspended-at-yield-point -> completed,
// where completion is reached by the body returning,
// by an unhandled injected error, or by a termination request.
// After completion, Next keeps reporting false (idempotent exhaustion).
type Generator[V any] struct {
	coro coro[V, struct{}]
}

// Next resumes the body until its next yield point and reports whether a value was produced.
// The first call starts the body.
func (g *Generator[V]) Next() bool { return g.coro.resume(resume[struct{}]{}) }

// Value returns the value produced by the last successful resume.
// It keeps returning the last produced value after exhaustion.
func (g *Generator[V]) Value() V { return g.coro.value }

// Err returns the error the body completed with, if any.
// Clean exhaustion and quiet termination leave it nil.
func (g *Generator[V]) Err() error { return g.coro.err }

// Throw resumes the body with err raised at the paused yield point:
// the pending Yield call returns err.
// If the body handles it and continues, Throw behaves like Next.
// If the body completes with it (or any other error), Throw reports false
// and the error becomes available through Err.
// Throwing on a not yet started generator completes it without running the body.
// Throwing on an already completed generator records the error as well,
// so an injected error is never lost.
func (g *Generator[V]) Throw(err error) bool { return g.coro.resume(resume[struct{}]{err: err}) }

// Close requests early termination.
//
// The paused Yield call returns ErrTerminate.
// If the body propagates it or returns nil, Close reports quiet completion.
// If the body was already completed or never started, Close is a no-op.
// If the body yields another value instead, Close tears the body down and returns ErrUncooperative.
// If the body completes with any other error, Close returns that error.
// Close is idempotent.
func (g *Generator[V]) Close() error { return g.coro.close() }

// Seq exposes the remainder of the generator as a single use push sequence.
// Leaving the range early terminates the generator through Close.
func (g *Generator[V]) Seq() iter.Seq[V] {
	return func(yield func(V) bool) {
		defer func() { _ = g.Close() }()
		for g.Next() {
			if !yield(g.Value()) {
				return
			}
		}
	}
}

// Generator2 is a Generator whose yield points evaluate to a value injected with Send.
type Generator2[V, S any] struct {
	coro coro[V, S]
}

// Next resumes the body until its next yield point and reports whether a value was produced.
// The pending Yield call receives the zero value of S.
func (g *Generator2[V, S]) Next() bool { return g.coro.resume(resume[S]{}) }

// Send resumes the body with the paused Yield call evaluating to s,
// and otherwise behaves like Next.
// Send panics when the generator was not yet started,
// as there is no yield point yet that could receive the value.
func (g *Generator2[V, S]) Send(s S) bool {
	if g.coro.done {
		return false
	}
	if !g.coro.started {
		panic("genkit: Send on a not yet started generator; call Next first")
	}
	return g.coro.resume(resume[S]{value: s})
}

// Value returns the value produced by the last successful resume.
func (g *Generator2[V, S]) Value() V { return g.coro.value }

// Err returns the error the body completed with, if any.
func (g *Generator2[V, S]) Err() error { return g.coro.err }

// Throw resumes the body with err raised at the paused yield point.
func (g *Generator2[V, S]) Throw(err error) bool { return g.coro.resume(resume[S]{err: err}) }

// Close requests early termination. See Generator.Close.
func (g *Generator2[V, S]) Close() error { return g.coro.close() }

// Yielder is the handle a generator body yields values through.
type Yielder[V any] struct {
	inner *Yielder2[V, struct{}]
}

// Yield suspends the body, produces v, and blocks until the next demand.
// The returned error is nil on a plain resume,
// the injected error when the consumer used Throw,
// and ErrTerminate when early termination was requested.
func (y *Yielder[V]) Yield(v V) error {
	_, err := y.inner.Yield(v)
	return err
}

// Yielder2 is the handle a Generate2 body yields values through.
type Yielder2[V, S any] struct {
	c *coro[V, S]
}

// Yield suspends the body, produces v, and blocks until the next demand.
// The value result is the one injected with Send, or the zero value of S otherwise.
func (y *Yielder2[V, S]) Yield(v V) (S, error) {
	c := y.c
	if c.killed {
		panic(panicKill)
	}
	c.yields <- v
	msg := <-c.resumes
	if msg.kill {
		panic(panicKill)
	}
	if msg.term {
		var zero S
		return zero, ErrTerminate
	}
	return msg.value, msg.err
}

// resume is the message a consumer side call hands to the paused body.
type resume[S any] struct {
	value S
	err   error
	term  bool
	kill  bool
}

// result is the completion report of the body goroutine.
type result struct {
	err      error
	panicVal any
	panicked bool
}

// coro is the coroutine engine shared by Generator and Generator2.
//
// The channels are unbuffered on purpose:
// every send is a direct handoff between the consumer and the body,
// which guarantees that exactly one of the two sides runs at any moment.
type coro[V, S any] struct {
	body func(*Yielder2[V, S]) error

	resumes chan resume[S]
	yields  chan V
	donec   chan result

	started bool
	done    bool
	killed  bool
	value   V
	err     error
}

func (c *coro[V, S]) init(body func(*Yielder2[V, S]) error) {
	c.body = body
	c.resumes = make(chan resume[S])
	c.yields = make(chan V)
	c.donec = make(chan result)
}

func (c *coro[V, S]) start() {
	c.started = true
	go func() {
		var res result
		func() {
			defer func() {
				if r := recover(); r != nil {
					if r == panicKill {
						return
					}
					res.panicked = true
					res.panicVal = r
				}
			}()
			res.err = c.body(&Yielder2[V, S]{c: c})
		}()
		c.donec <- res
	}()
}

func (c *coro[V, S]) resume(msg resume[S]) bool {
	if c.done {
		if msg.err != nil {
			// the body has no resume point left that could handle the injected error
			c.err = errorkit.Merge(c.err, msg.err)
		}
		return false
	}
	if !c.started {
		if msg.err != nil {
			// the body has no yield point yet that could handle the injected error
			c.done = true
			c.err = msg.err
			return false
		}
		c.start()
	} else {
		c.resumes <- msg
	}
	select {
	case v := <-c.yields:
		c.value = v
		return true
	case res := <-c.donec:
		c.done = true
		if res.panicked {
			panic(res.panicVal)
		}
		c.err = res.err
		return false
	}
}

func (c *coro[V, S]) close() error {
	if c.done {
		return nil
	}
	if !c.started {
		c.done = true
		return nil
	}
	c.resumes <- resume[S]{term: true}
	select {
	case <-c.yields:
		c.killed = true
		c.resumes <- resume[S]{kill: true}
		<-c.donec
		c.done = true
		return ErrUncooperative
	case res := <-c.donec:
		c.done = true
		if res.panicked {
			panic(res.panicVal)
		}
		if res.err != nil && !errors.Is(res.err, ErrTerminate) {
			return res.err
		}
		return nil
	}
}

var _ iteration.Iterator[any] = &Generator[any]{}
