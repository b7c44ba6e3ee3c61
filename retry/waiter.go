// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gogama/apiclient/request"
)

// A Waiter specifies how long to wait before retrying a failed attempt.
//
// Implementations of Waiter must be safe for concurrent use by multiple
// goroutines.
//
// The execution pipeline never calls the Waiter on a retry policy if
// the policy's Decider returned false.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// DefaultWaiter is the default retry wait policy. It uses a jittered
// exponential backoff formula with a base wait of 50 milliseconds and a
// maximum wait of 1 second.
var DefaultWaiter = NewExpWaiter(50*time.Millisecond, 1*time.Second, rand.NewSource(time.Now().UnixNano()))

// NewFixedWaiter constructs a Waiter that always returns the given
// duration.
func NewFixedWaiter(d time.Duration) Waiter {
	if d < 0 {
		panic("apiclient/retry: negative wait")
	}
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing an exponential backoff
// formula with optional jitter.
//
// The formula implemented is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// Parameters base and max control the exponential calculation of the
// ceiling:
//
//	ceil := min(base * 2**attempt, max)
//
// Base and max must be positive values, and max must be at least equal
// to base.
//
// If src is nil, the waiter does not jitter and returns ceil on every
// attempt. Otherwise src is used to pick a random wait between 0 and
// ceil. The waiter serializes access to src, so src itself need not be
// safe for concurrent use.
func NewExpWaiter(base, max time.Duration, src rand.Source) Waiter {
	if base < 1 {
		panic("apiclient/retry: base must be positive")
	}
	if max < base {
		panic("apiclient/retry: max must be at least base")
	}
	w := &expWaiter{
		base: base,
		max:  max,
	}
	if src != nil {
		w.rand = rand.New(src)
	}
	return w
}

type expWaiter struct {
	base time.Duration
	max  time.Duration
	lock sync.Mutex
	rand *rand.Rand
}

func (w *expWaiter) Wait(e *request.Execution) time.Duration {
	ceil := w.ceil(e.Attempt)
	if w.rand == nil {
		return ceil
	}

	w.lock.Lock()
	defer w.lock.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil) + 1))
}

func (w *expWaiter) ceil(attempt int) time.Duration {
	if attempt < 0 || attempt > 62 {
		return w.max
	}

	ceil := w.base << attempt
	if ceil < w.base || ceil>>attempt != w.base || ceil > w.max {
		return w.max
	}

	return ceil
}
