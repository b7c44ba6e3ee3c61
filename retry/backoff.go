// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"time"

	"github.com/gogama/apiclient/request"
)

// Backoff is an exponential backoff retry Policy with a fixed retry
// budget.
//
// A Backoff retries an attempt only when the attempt failed in a
// transient way:
//
// • connection failures (refused, reset, dropped, dial and DNS errors)
// are always retried;
//
// • timeouts are retried only if the Backoff was constructed with
// retryOnTimeout set to true;
//
// • responses are never retried, whatever their status code, unless
// the status code was designated transient using WithStatusCodes.
//
// Retries are done while the zero-based attempt number is less than the
// retry count, so a Backoff with a retry count of 3 makes at most four
// attempts in total.
//
// Backoff values are immutable. The With methods return modified
// copies.
type Backoff struct {
	retryCount     int
	retryOnTimeout bool
	statusCodes    DeciderFunc
	waiter         Waiter
}

// DefaultBackoffBase and DefaultBackoffMax are the exponential wait
// bounds of a Backoff constructed by NewBackoff.
const (
	DefaultBackoffBase = 100 * time.Millisecond
	DefaultBackoffMax  = 10 * time.Second
)

// NewBackoff constructs an exponential backoff policy allowing up to
// retryCount retries. Timeouts count as transient failures only if
// retryOnTimeout is true.
func NewBackoff(retryCount int, retryOnTimeout bool) Backoff {
	if retryCount < 0 {
		panic("apiclient/retry: negative retry count")
	}
	return Backoff{
		retryCount:     retryCount,
		retryOnTimeout: retryOnTimeout,
		statusCodes:    StatusCode(),
		waiter:         NewExpWaiter(DefaultBackoffBase, DefaultBackoffMax, rand.NewSource(time.Now().UnixNano())),
	}
}

// RetryCount returns the maximum number of retries.
func (b Backoff) RetryCount() int {
	return b.retryCount
}

// RetryOnTimeout reports whether timeouts are retried.
func (b Backoff) RetryOnTimeout() bool {
	return b.retryOnTimeout
}

// WithStatusCodes returns a copy of b which additionally treats
// responses carrying one of the status codes ss as transient. The
// codes replace any codes designated by an earlier call.
func (b Backoff) WithStatusCodes(ss ...int) Backoff {
	b.statusCodes = StatusCode(ss...)
	return b
}

// WithWait returns a copy of b whose wait between attempts is computed
// using the jittered exponential formula of NewExpWaiter with the given
// bounds.
func (b Backoff) WithWait(base, max time.Duration) Backoff {
	b.waiter = NewExpWaiter(base, max, rand.NewSource(time.Now().UnixNano()))
	return b
}

// WithWaiter returns a copy of b which uses w to compute the wait
// between attempts.
func (b Backoff) WithWaiter(w Waiter) Backoff {
	if w == nil {
		panic("apiclient/retry: nil waiter")
	}
	b.waiter = w
	return b
}

// Decide returns true if the most recent attempt failed transiently
// and the retry budget is not yet spent.
func (b Backoff) Decide(e *request.Execution) bool {
	return e.Attempt < b.retryCount && b.transient(e)
}

// Wait returns the delay before the next attempt.
func (b Backoff) Wait(e *request.Execution) time.Duration {
	if b.waiter == nil {
		return 0
	}
	return b.waiter.Wait(e)
}

// Exhausted returns true if the most recent attempt failed transiently
// but no retry will be done because the retry budget is spent.
func (b Backoff) Exhausted(e *request.Execution) bool {
	return e.Attempt >= b.retryCount && b.transient(e)
}

func (b Backoff) transient(e *request.Execution) bool {
	if e.Err != nil {
		if e.Timeout() {
			return b.retryOnTimeout
		}
		return e.Transience().Conn()
	}
	return b.statusCodes != nil && b.statusCodes(e)
}
