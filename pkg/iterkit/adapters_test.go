package iterkit_test

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/iterate/pkg/iterkit"
	"go.llib.dev/iterate/pkg/iterkit/iterkitcontract"
	"go.llib.dev/iterate/port/iteration"
)

func TestFromSlice(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("produces the elements in index order", func(t *testcase.T) {
		vs, err := iterkit.Collect(iterkit.FromSlice([]string{"a", "b", "c"}))
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, vs)
	})

	s.Test("an empty slice makes an exhausted cursor", func(t *testcase.T) {
		itr := iterkit.FromSlice([]int{}).Iter()
		assert.False(t, itr.Next())
		assert.NoError(t, itr.Err())
		assert.NoError(t, itr.Close())
	})

	s.Test("cursors are independent", func(t *testcase.T) {
		i := iterkit.FromSlice([]int{1, 2, 3})
		itr1 := i.Iter()
		itr2 := i.Iter()
		assert.True(t, itr1.Next())
		assert.True(t, itr1.Next())
		assert.True(t, itr2.Next())
		assert.Equal(t, 2, itr1.Value())
		assert.Equal(t, 1, itr2.Value())
	})
}

func TestFromSlice_contract(t *testing.T) {
	iterkitcontract.Iterable[string](func(tb testing.TB) iteration.Iterable[string] {
		return iterkit.FromSlice([]string{"a", "b", "c"})
	}).Test(t)
}

func TestFromMap(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("every key-value pair is produced exactly once", func(t *testcase.T) {
		m := map[string]int{"a": 1, "b": 2}
		kvs, err := iterkit.Collect2(iterkit.FromMap(m))
		assert.NoError(t, err)
		assert.ContainsExactly(t, []iterkit.KV[string, int]{{K: "a", V: 1}, {K: "b", V: 2}}, kvs)
	})

	s.Test("iteration order is unspecified but the element set is stable", func(t *testcase.T) {
		var m = map[int]string{}
		t.Random.Repeat(3, 10, func() {
			m[t.Random.Int()] = t.Random.String()
		})
		i := iterkit.FromMap(m)
		kvs1, err := iterkit.Collect2(i)
		assert.NoError(t, err)
		kvs2, err := iterkit.Collect2(i)
		assert.NoError(t, err)
		assert.ContainsExactly(t, kvs1, kvs2)
	})

	s.Test("a cursor snapshots the pairs at acquisition time", func(t *testcase.T) {
		m := map[string]int{"a": 1}
		itr := iterkit.FromMap(m).Iter()
		m["b"] = 2
		var n int
		for itr.Next() {
			n++
		}
		assert.Equal(t, 1, n)
		assert.NoError(t, itr.Close())
	})
}

func TestEnumerate(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("pairs each element with its zero based index", func(t *testcase.T) {
		kvs, err := iterkit.Collect2(iterkit.Enumerate[string](iterkit.FromSlice([]string{"a", "b", "c"})))
		assert.NoError(t, err)
		assert.Equal(t, []iterkit.KV[int, string]{
			{K: 0, V: "a"},
			{K: 1, V: "b"},
			{K: 2, V: "c"},
		}, kvs)
	})

	s.Test("the count restarts for every traversal", func(t *testcase.T) {
		i := iterkit.Enumerate[string](iterkit.FromSlice([]string{"x"}))
		for range 2 {
			itr := i.Iter()
			assert.True(t, itr.Next())
			k, v := itr.Value()
			assert.Equal(t, 0, k)
			assert.Equal(t, "x", v)
			assert.NoError(t, itr.Close())
		}
	})

	s.Test("empty source", func(t *testcase.T) {
		itr := iterkit.Enumerate[int](iterkit.Empty[int]()).Iter()
		assert.False(t, itr.Next())
		assert.NoError(t, itr.Err())
	})
}

func TestReverse(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("produces the source traversal back to front", func(t *testcase.T) {
		vs, err := iterkit.Collect(iterkit.Reverse[string](iterkit.FromSlice([]string{"a", "b", "c"})))
		assert.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, vs)
	})

	s.Test("empty source", func(t *testcase.T) {
		vs, err := iterkit.Collect(iterkit.Reverse[int](iterkit.Empty[int]()))
		assert.NoError(t, err)
		assert.Empty(t, vs)
	})
}

func TestReverse_contract(t *testing.T) {
	iterkitcontract.Iterable[int](func(tb testing.TB) iteration.Iterable[int] {
		return iterkit.Reverse[int](iterkit.IntRange(1, 5))
	}).Test(t)
}

func TestFromFunc(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("drives the function until it returns the sentinel", func(t *testcase.T) {
		stack := []int{0, 1, 2, 3, 4, 5}
		pop := func() int {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			return v
		}
		vs, err := iterkit.Collect(iterkit.FromFunc(pop, 0))
		assert.NoError(t, err)
		assert.Equal(t, []int{5, 4, 3, 2, 1}, vs)
	})

	s.Test("the sentinel is not produced and the function is not called after it", func(t *testcase.T) {
		var calls int
		next := func() int {
			calls++
			return 0
		}
		itr := iterkit.FromFunc(next, 0).Iter()
		assert.False(t, itr.Next())
		assert.False(t, itr.Next())
		assert.Equal(t, 1, calls)
	})

	s.Test("traversals share the state the function closes over", func(t *testcase.T) {
		var n int
		next := func() int {
			n++
			return n
		}
		i := iterkit.FromFunc(next, 3)
		vs1, err := iterkit.Collect(i)
		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2}, vs1)

		// the first traversal already consumed the sentinel,
		// so the second one never meets it and must be driven by hand
		itr := i.Iter()
		defer itr.Close()
		var vs2 []int
		for range 5 {
			assert.True(t, itr.Next())
			vs2 = append(vs2, itr.Value())
		}
		assert.Equal(t, []int{4, 5, 6, 7, 8}, vs2)
	})
}

func TestIntRange(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("both boundaries are inclusive", func(t *testcase.T) {
		vs, err := iterkit.Collect(iterkit.IntRange(3, 5))
		assert.NoError(t, err)
		assert.Equal(t, []int{3, 4, 5}, vs)
	})

	s.Test("an inverted range is empty", func(t *testcase.T) {
		vs, err := iterkit.Collect(iterkit.IntRange(5, 3))
		assert.NoError(t, err)
		assert.Empty(t, vs)
	})
}

func TestIntRange_contract(t *testing.T) {
	iterkitcontract.Iterable[int](func(tb testing.TB) iteration.Iterable[int] {
		return iterkit.IntRange(1, 7)
	}).Test(t)
}

func TestEmpty(t *testing.T) {
	itr := iterkit.Empty[string]().Iter()
	assert.False(t, itr.Next())
	assert.NoError(t, itr.Err())
	assert.NoError(t, itr.Close())
	assert.False(t, itr.Next())
}

func TestSingleValue(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("produces the single element once per traversal", func(t *testcase.T) {
		v := t.Random.String()
		i := iterkit.SingleValue(v)
		vs, err := iterkit.Collect(i)
		assert.NoError(t, err)
		assert.Equal(t, []string{v}, vs)
		vs, err = iterkit.Collect(i)
		assert.NoError(t, err)
		assert.Equal(t, []string{v}, vs)
	})
}

func TestSingleValue_contract(t *testing.T) {
	iterkitcontract.Iterable[int](func(tb testing.TB) iteration.Iterable[int] {
		return iterkit.SingleValue(42)
	}).Test(t)
}
