// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/apiclient/transient"
)

// An Execution represents the state of a single request descriptor
// execution.
//
// When a request descriptor is executed, an Execution is created for
// it. The Execution is updated as the execution progresses (for example
// when a response becomes available, or when a retry is needed) and is
// handed to the retry policy, the timeout policy, and any installed
// event handlers.
//
// Policies and event handlers may set values on an Execution using its
// SetValue method and read them back using the Value method. However,
// they should treat the structure's exported field values as immutable
// and leave them unmodified, as the execution state is vital to the
// correct functioning of the execution logic.
type Execution struct {
	// Name is the logical request name configured on the descriptor.
	// Before-request handlers may change the name used for an attempt;
	// Name always holds the name used by the most recent attempt.
	Name string

	// Method is the HTTP method of the descriptor being executed.
	Method string

	// URL is the resolved URL of the descriptor being executed, with
	// route values substituted and query values appended. Once an
	// attempt is underway it holds the URL of the descriptor as sent,
	// after before-request handlers ran.
	URL string

	// Start is the start time of the execution. It is assigned a
	// non-zero value when the execution starts, and this value remains
	// constant thereafter.
	Start time.Time

	// End is the end time of the execution. It contains the zero value
	// until the execution ends, when it is set to the current time.
	End time.Time

	// Attempt is the zero-based number of the current attempt during
	// the execution. It is set to zero on the initial attempt, one on
	// the first retry, and so on.
	//
	// When the execution is ended, Attempt contains the zero-based
	// number of the last attempt made during the execution. So for
	// example an execution that ends after an initial attempt plus two
	// retries will have an attempt number of 2.
	Attempt int

	// AttemptTimeouts is the count of the number of times an attempt
	// timed out during the execution.
	//
	// Execution timeouts (when the descriptor's overall timeout
	// expires) do not contribute to the attempt timeout counter, but if
	// an attempt timeout and an execution timeout coincide, the attempt
	// timeout counter will be incremented by one due to the attempt
	// timeout.
	AttemptTimeouts int

	// PreviousTimeout indicates whether the attempt before the current
	// one timed out. It is false during the initial attempt. Unlike
	// Err, it is kept when a retry resets the attempt state.
	PreviousTimeout bool

	// StatusCode is the HTTP status code received in the most recent
	// attempt. It is zero if the most recent attempt ended in an error,
	// or if a current attempt is underway, or before the execution
	// starts.
	StatusCode int

	// Header holds the HTTP response headers received in the most
	// recent attempt. It is nil whenever StatusCode is zero, and should
	// be treated as read-only.
	Header http.Header

	// Body is the complete response body received in the most recent
	// attempt. It is nil whenever StatusCode is zero.
	Body []byte

	// Err indicates the error received while making the most recent
	// attempt. It will be nil if the most recent attempt ended without
	// an error, or if a current attempt is underway, or before the
	// execution starts.
	//
	// While an execution is in-flight, Err may fluctuate between nil
	// and various non-nil error values. Once the execution has Ended,
	// Err will not change and has the same value as the error value
	// returned by the executing method.
	Err error

	// Wait is the delay the retry policy prescribed before the next
	// attempt. It is only meaningful during the BeforeRetryWait event.
	Wait time.Duration

	// data contains arbitrary user data, set and read by event handlers
	// via SetValue and Value.
	data context.Context
}

// Success reports whether the most recent attempt received a response
// with a 2XX status code and no error.
func (e *Execution) Success() bool {
	return e.Err == nil && e.StatusCode >= 200 && e.StatusCode < 300
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has Ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start. The
// return value is thus monotonically increasing over the life of
// the execution, and becomes static when the execution has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the execution has ended.
//
// If the return value is true, End is a non-zero time and there will
// be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout. The timeout may have been caused by an
// attempt timeout, or by the descriptor's overall timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// Transience returns the transience category of Err.
func (e *Execution) Transience() transient.Category {
	return transient.Categorize(e.Err)
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
