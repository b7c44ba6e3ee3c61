// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pairs

import (
	"net/textproto"
	"sort"
)

// A Policy decides what With does when the key being added is already
// present in a Collection.
type Policy int

const (
	// Append keeps every value added under the same key, in the order
	// added. Key comparison is case-insensitive, using the canonical
	// MIME header form. Append is the policy for HTTP headers, where
	// repeating a header name is legal.
	Append Policy = iota
	// Replace overwrites the existing value, in place, so that the last
	// write wins. Key comparison is case-sensitive. Replace is the
	// policy for route values and query values.
	Replace
)

// A Pair is a single key/value entry of a Collection.
type Pair struct {
	Key   string
	Value string
}

// A Pairer converts a structured value into key/value pairs which can
// be folded into a Collection using WithPairer.
//
// Pairer is the explicit alternative to spreading an arbitrary struct's
// fields into pairs using reflection: the type being spread decides
// which of its members are exposed, and how they are formatted.
type Pairer interface {
	Pairs() []Pair
}

// The PairerFunc type is an adapter to allow the use of ordinary
// functions as a Pairer.
type PairerFunc func() []Pair

// Pairs calls f().
func (f PairerFunc) Pairs() []Pair {
	return f()
}

// A Collection is an immutable, insertion-ordered list of key/value
// pairs. Every method that "changes" a Collection returns a new
// Collection and leaves the receiver untouched, so a Collection may be
// shared freely between goroutines and between request descriptors.
//
// The zero value is an empty Collection using the Append policy.
type Collection struct {
	policy Policy
	items  []Pair
}

// New returns an empty Collection using the given duplicate-key policy.
func New(p Policy) Collection {
	return Collection{policy: p}
}

// Policy returns the duplicate-key policy of c.
func (c Collection) Policy() Policy {
	return c.policy
}

// With returns a new Collection containing all the pairs in c plus the
// given pair, added according to c's Policy.
func (c Collection) With(key, value string) Collection {
	if c.policy == Replace {
		if i := c.index(key); i >= 0 {
			return c.replaceAt(i, value)
		}
	}
	return c.appended(Pair{Key: key, Value: value})
}

// WithPairs folds each pair into c, in order, as if by calling With
// once per pair.
func (c Collection) WithPairs(ps ...Pair) Collection {
	for _, p := range ps {
		c = c.With(p.Key, p.Value)
	}
	return c
}

// WithMap folds the entries of m into c. Because map iteration order
// is random, entries are folded in ascending key order.
func (c Collection) WithMap(m map[string]string) Collection {
	if len(m) == 0 {
		return c
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c = c.With(k, m[k])
	}
	return c
}

// WithPairer folds the pairs produced by p into c. A nil Pairer leaves
// c unchanged.
func (c Collection) WithPairer(p Pairer) Collection {
	if p == nil {
		return c
	}
	return c.WithPairs(p.Pairs()...)
}

// Set returns a new Collection in which key maps to exactly one value,
// regardless of c's Policy. If key was present, the first occurrence is
// overwritten in place and any further occurrences are dropped.
// Otherwise the pair is appended.
func (c Collection) Set(key, value string) Collection {
	i := c.index(key)
	if i < 0 {
		return c.appended(Pair{Key: key, Value: value})
	}
	items := make([]Pair, 0, len(c.items))
	for j, p := range c.items {
		switch {
		case j == i:
			items = append(items, Pair{Key: p.Key, Value: value})
		case c.match(p.Key, key):
			// Drop later duplicates.
		default:
			items = append(items, p)
		}
	}
	return Collection{policy: c.policy, items: items}
}

// Without returns a new Collection with every pair whose key matches
// key removed.
func (c Collection) Without(key string) Collection {
	if c.index(key) < 0 {
		return c
	}
	items := make([]Pair, 0, len(c.items))
	for _, p := range c.items {
		if !c.match(p.Key, key) {
			items = append(items, p)
		}
	}
	return Collection{policy: c.policy, items: items}
}

// Get returns the first value associated with key, and whether key is
// present at all.
func (c Collection) Get(key string) (string, bool) {
	if i := c.index(key); i >= 0 {
		return c.items[i].Value, true
	}
	return "", false
}

// Values returns every value associated with key, in insertion order.
func (c Collection) Values(key string) []string {
	var vs []string
	for _, p := range c.items {
		if c.match(p.Key, key) {
			vs = append(vs, p.Value)
		}
	}
	return vs
}

// Has reports whether key is present in c.
func (c Collection) Has(key string) bool {
	return c.index(key) >= 0
}

// Len returns the number of pairs in c.
func (c Collection) Len() int {
	return len(c.items)
}

// All returns a copy of the pairs in c, in insertion order.
func (c Collection) All() []Pair {
	if len(c.items) == 0 {
		return nil
	}
	out := make([]Pair, len(c.items))
	copy(out, c.items)
	return out
}

// Each calls f for every pair in c, in insertion order.
func (c Collection) Each(f func(key, value string)) {
	for _, p := range c.items {
		f(p.Key, p.Value)
	}
}

func (c Collection) index(key string) int {
	for i, p := range c.items {
		if c.match(p.Key, key) {
			return i
		}
	}
	return -1
}

func (c Collection) match(a, b string) bool {
	if c.policy == Append {
		return textproto.CanonicalMIMEHeaderKey(a) == textproto.CanonicalMIMEHeaderKey(b)
	}
	return a == b
}

// appended never writes into c's backing array: the full slice
// expression caps the capacity so append always copies.
func (c Collection) appended(p Pair) Collection {
	return Collection{policy: c.policy, items: append(c.items[:len(c.items):len(c.items)], p)}
}

func (c Collection) replaceAt(i int, value string) Collection {
	items := make([]Pair, len(c.items))
	copy(items, c.items)
	items[i].Value = value
	return Collection{policy: c.policy, items: items}
}
