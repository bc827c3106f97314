// Package iterkitcontract provides the behavioral contract of the iteration protocol.
//
// Supplier implementations of iteration.Iterable can run the suite
// to verify they uphold what consumers are allowed to assume:
// fresh independent cursors, stable traversals and final exhaustion.
package iterkitcontract

import (
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/iterate/pkg/iterkit"
	"go.llib.dev/iterate/port/iteration"
)

type Config struct {
	// AnyOrder accepts implementations whose traversal order is unspecified,
	// such as map backed iterables.
	// With AnyOrder the suite only expects traversals to produce the same element set.
	AnyOrder bool
}

func (c Config) Configure(t *Config) {
	if c.AnyOrder {
		t.AnyOrder = true
	}
}

type Option option.Option[Config]

// AnyOrder marks the examined Iterable as one without a specified traversal order.
func AnyOrder() Option {
	return option.Func[Config](func(c *Config) {
		c.AnyOrder = true
	})
}

// Iterable returns the contract suite of the iteration.Iterable role.
//
// The mk function must supply an Iterable with at least one element,
// whose content does not change between traversals.
func Iterable[V any](mk contract.Make[iteration.Iterable[V]], opts ...Option) contract.Contract {
	c := option.ToConfig(opts)
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) iteration.Iterable[V] {
		return mk(t)
	})

	s.Then("a traversal produces values", func(t *testcase.T) {
		vs, err := iterkit.Collect(subject.Get(t))
		assert.NoError(t, err)
		assert.NotEmpty(t, vs)
	})

	s.Then("two independent traversals observe the same sequence", func(t *testcase.T) {
		i := subject.Get(t)
		vs1, err := iterkit.Collect(i)
		assert.NoError(t, err)
		vs2, err := iterkit.Collect(i)
		assert.NoError(t, err)
		assertSameSequence(t, c, vs1, vs2)
	})

	s.Then("cursors acquired from the same Iterable traverse independently", func(t *testcase.T) {
		i := subject.Get(t)
		itr1 := i.Iter()
		defer itr1.Close()
		itr2 := i.Iter()
		defer itr2.Close()

		var vs1, vs2 []V
		// interleaved driving, so shared position state would be noticed
		for {
			ok1 := itr1.Next()
			if ok1 {
				vs1 = append(vs1, itr1.Value())
			}
			ok2 := itr2.Next()
			if ok2 {
				vs2 = append(vs2, itr2.Value())
			}
			if !ok1 && !ok2 {
				break
			}
		}
		assertSameSequence(t, c, vs1, vs2)
	})

	s.Then("exhaustion is final", func(t *testcase.T) {
		itr := subject.Get(t).Iter()
		defer itr.Close()
		for itr.Next() {
		}
		t.Random.Repeat(3, 7, func() {
			assert.False(t, itr.Next())
		})
		assert.NoError(t, itr.Err())
	})

	s.Then("the value is repeatable without side effects", func(t *testcase.T) {
		itr := subject.Get(t).Iter()
		defer itr.Close()
		assert.True(t, itr.Next())
		assert.Equal(t, itr.Value(), itr.Value())
	})

	s.Then("Close is idempotent", func(t *testcase.T) {
		itr := subject.Get(t).Iter()
		assert.NoError(t, itr.Close())
		assert.NoError(t, itr.Close())
	})

	s.Then("Next after Close reports exhaustion", func(t *testcase.T) {
		itr := subject.Get(t).Iter()
		assert.NoError(t, itr.Close())
		assert.False(t, itr.Next())
	})

	s.Then("closing an exhausted cursor is safe", func(t *testcase.T) {
		itr := subject.Get(t).Iter()
		for itr.Next() {
		}
		assert.NoError(t, itr.Close())
		assert.False(t, itr.Next())
	})

	return s.AsSuite("Iterable")
}

func assertSameSequence[V any](t *testcase.T, c Config, exp, got []V) {
	if c.AnyOrder {
		assert.ContainsExactly(t, exp, got)
		return
	}
	assert.Equal(t, exp, got)
}
