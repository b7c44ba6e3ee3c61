// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package pairs provides Collection, the immutable ordered key/value
// list used by request descriptors for headers, route values and query
// values.
//
// A Collection's Policy decides what happens when a key is added twice.
// Headers use Append, since a header may legally be repeated:
//
//	h := pairs.New(pairs.Append).With("X", "a").With("X", "b")
//	h.Values("X") // ["a", "b"]
//
// Route and query values use Replace, so the last write wins:
//
//	q := pairs.New(pairs.Replace).With("p", "1").With("p", "2")
//	q.Values("p") // ["2"]
package pairs
