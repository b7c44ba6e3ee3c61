// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pairs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_With(t *testing.T) {
	t.Run("Append", func(t *testing.T) {
		c := New(Append).With("X", "a").With("x", "b").With("Y", "c")
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []string{"a", "b"}, c.Values("X"))
		assert.Equal(t, []Pair{{"X", "a"}, {"x", "b"}, {"Y", "c"}}, c.All())
		v, ok := c.Get("X")
		assert.True(t, ok)
		assert.Equal(t, "a", v)
	})
	t.Run("Replace", func(t *testing.T) {
		c := New(Replace).With("p", "1").With("q", "x").With("p", "2")
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, []string{"2"}, c.Values("p"))
		assert.Equal(t, []Pair{{"p", "2"}, {"q", "x"}}, c.All())
	})
	t.Run("Replace is case-sensitive", func(t *testing.T) {
		c := New(Replace).With("p", "1").With("P", "2")
		assert.Equal(t, []string{"1"}, c.Values("p"))
		assert.Equal(t, []string{"2"}, c.Values("P"))
	})
	t.Run("zero value appends", func(t *testing.T) {
		var c Collection
		assert.Equal(t, Append, c.Policy())
		c = c.With("a", "1").With("a", "2")
		assert.Equal(t, []string{"1", "2"}, c.Values("a"))
	})
}

func TestCollection_Immutable(t *testing.T) {
	base := New(Append).With("a", "1")
	left := base.With("b", "2")
	right := base.With("c", "3")
	assert.Equal(t, []Pair{{"a", "1"}}, base.All())
	assert.Equal(t, []Pair{{"a", "1"}, {"b", "2"}}, left.All())
	assert.Equal(t, []Pair{{"a", "1"}, {"c", "3"}}, right.All())

	r := New(Replace).With("a", "1").With("b", "2")
	r2 := r.With("a", "changed")
	assert.Equal(t, []string{"1"}, r.Values("a"))
	assert.Equal(t, []string{"changed"}, r2.Values("a"))

	all := r.All()
	all[0].Value = "mutated"
	assert.Equal(t, []string{"1"}, r.Values("a"))
}

func TestCollection_Concurrent(t *testing.T) {
	base := New(Append).With("shared", "0")
	var wg sync.WaitGroup
	results := make([]Collection, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = base.With("k", string(rune('a'+i%26)))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, base.Len())
	for i, c := range results {
		require.Equal(t, 2, c.Len())
		assert.Equal(t, string(rune('a'+i%26)), c.Values("k")[0])
	}
}

func TestCollection_WithMap(t *testing.T) {
	c := New(Replace).WithMap(map[string]string{"b": "2", "a": "1", "c": "3"})
	assert.Equal(t, []Pair{{"a", "1"}, {"b", "2"}, {"c", "3"}}, c.All())
	assert.Equal(t, c, c.WithMap(nil))
}

func TestCollection_WithPairer(t *testing.T) {
	type item struct {
		ID   string
		Kind string
	}
	it := item{ID: "42", Kind: "widget"}
	p := PairerFunc(func() []Pair {
		return []Pair{{"id", it.ID}, {"kind", it.Kind}}
	})
	c := New(Replace).With("id", "old").WithPairer(p)
	assert.Equal(t, []Pair{{"id", "42"}, {"kind", "widget"}}, c.All())
	assert.Equal(t, c, c.WithPairer(nil))
}

func TestCollection_Set(t *testing.T) {
	c := New(Append).With("Authorization", "a").With("Other", "x").With("authorization", "b")
	s := c.Set("AUTHORIZATION", "c")
	assert.Equal(t, []Pair{{"Authorization", "c"}, {"Other", "x"}}, s.All())
	assert.Equal(t, 3, c.Len())
	n := c.Set("New", "v")
	assert.Equal(t, []string{"v"}, n.Values("new"))
}

func TestCollection_Without(t *testing.T) {
	c := New(Append).With("a", "1").With("b", "2").With("A", "3")
	w := c.Without("a")
	assert.Equal(t, []Pair{{"b", "2"}}, w.All())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, c, c.Without("missing"))
	assert.False(t, w.Has("a"))
	assert.True(t, c.Has("A"))
}

func TestCollection_Each(t *testing.T) {
	c := New(Append).With("a", "1").With("b", "2")
	var got []string
	c.Each(func(k, v string) {
		got = append(got, k+"="+v)
	})
	assert.Equal(t, []string{"a=1", "b=2"}, got)
	assert.Nil(t, New(Append).All())
}
