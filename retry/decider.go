// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/apiclient/request"
	"github.com/gogama/apiclient/transient"
)

// A Decider decides if a retry should be done.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
//
// Use the built-in constructors Times, StatusCode, and Before, and the
// built-in deciders TransientErr, ConnErr and TimeoutErr; or implement
// your own Decider. Use DeciderFunc to convert an ordinary function
// into a Decider, and to compose deciders logically using
// DeciderFunc.And and DeciderFunc.Or.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It implements the Decider interface, and
// also provides the logical composition methods And and Or.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
type DeciderFunc func(e *request.Execution) bool

// DefaultTimes is the number of times DefaultPolicy will retry.
const DefaultTimes = 5

// DefaultDecider is a general-purpose retry decider. It allows up to
// DefaultTimes retries (up to 6 total attempts), and retries in the
// case of a transient error (TransientErr) or if the response carries
// one of the status codes 429, 502, 503 or 504.
var DefaultDecider = Times(DefaultTimes).And(StatusCode(429, 502, 503, 504).Or(TransientErr))

// TransientErr is a decider that indicates a retry if the current
// error is transient according to transient.Categorize.
//
// TransientErr only looks at the error, so it always returns false if
// a valid HTTP response was received.
var TransientErr DeciderFunc = func(e *request.Execution) bool {
	return e.Transience() != transient.Not
}

// ConnErr is a decider that indicates a retry if the current error is
// a connection failure: refused, reset, dropped, or failing at dial or
// name resolution time. Timeouts are not connection failures.
var ConnErr DeciderFunc = func(e *request.Execution) bool {
	return e.Transience().Conn()
}

// TimeoutErr is a decider that indicates a retry if the current error
// is a timeout.
var TimeoutErr DeciderFunc = func(e *request.Execution) bool {
	return e.Timeout()
}

// Decide returns true if a retry should be done, and false otherwise,
// after examining the current execution state.
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And composes two retry deciders into a new decider which returns true
// if both sub-deciders return true, and false otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two retry deciders into a new decider which returns
// true if either of the two sub-deciders returns true, but false if
// they both return false.
//
// Short-circuit logic is used, so g will not be evaluated if f returns
// true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Times constructs a retry decider which allows up to n retries. The
// returned decider returns true while the zero-based attempt number
// e.Attempt is less than n, and false otherwise.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Before constructs a retry decider allowing retries until a certain
// amount of time has elapsed since the start of the execution.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// StatusCode constructs a retry decider allowing retries based on the
// HTTP response status code. If the most recent attempt received a
// valid HTTP response whose status code is contained in ss, the decider
// returns true. Otherwise, it returns false.
func StatusCode(ss ...int) DeciderFunc {
	set := make(map[int]struct{}, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return func(e *request.Execution) bool {
		if e.Err != nil || e.StatusCode == 0 {
			return false
		}
		_, ok := set[e.StatusCode]
		return ok
	}
}
