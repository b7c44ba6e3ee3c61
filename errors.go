// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gogama/apiclient/transient"
)

// A Kind classifies an execution failure.
//
// Kind values also serve as sentinel errors, so the kind of any error
// returned by the execution pipeline can be tested with errors.Is:
//
//	if errors.Is(err, apiclient.ErrTransport) {
//		// ...
//	}
type Kind int

const (
	// KindConfiguration indicates the descriptor could not be turned
	// into a valid request: a malformed resource template, an
	// unresolved route value, an invalid method or header. It is never
	// retried.
	KindConfiguration Kind = iota + 1
	// KindAuthentication indicates the authentication strategy failed,
	// typically because a token could not be obtained.
	KindAuthentication
	// KindTransport indicates the request could not be sent or the
	// response could not be received: connection refused, DNS failure,
	// timeout, and so on.
	KindTransport
	// KindSerialization indicates the request body could not be
	// serialized, or the response body could not be deserialized.
	KindSerialization
	// KindRetryExhausted indicates the retry budget was spent while the
	// failure was still transient. The wrapped error is the last
	// failure.
	KindRetryExhausted
	// KindInterceptor indicates a before-request or after-response
	// handler returned an error.
	KindInterceptor
	// KindStatus indicates a response was received but its status code
	// was translated into a failure. The wrapped error is a
	// *StatusError.
	KindStatus
)

// Sentinel errors matching each Kind with errors.Is.
var (
	ErrConfiguration  error = KindConfiguration
	ErrAuthentication error = KindAuthentication
	ErrTransport      error = KindTransport
	ErrSerialization  error = KindSerialization
	ErrRetryExhausted error = KindRetryExhausted
	ErrInterceptor    error = KindInterceptor
	ErrStatus         error = KindStatus
)

var kindNames = []string{
	"unknown",
	"configuration",
	"authentication",
	"transport",
	"serialization",
	"retry exhausted",
	"interceptor",
	"status",
}

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[0]
	}
	return kindNames[k]
}

// Error returns "apiclient: <kind> error", allowing Kind to act as a
// sentinel error.
func (k Kind) Error() string {
	return "apiclient: " + k.String() + " error"
}

// Error is the error type returned by the execution pipeline.
type Error struct {
	// Kind classifies the failure.
	Kind Kind
	// Op is the operation that failed, the HTTP method in the form used
	// by url.Error ("Get", "Post", ...).
	Op string
	// URL is the resolved URL, or the unresolved resource template if
	// resolution failed.
	URL string
	// Attempts is the number of attempts made before the failure
	// surfaced. It is zero for failures detected before the first
	// attempt.
	Attempts int
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("apiclient: ")
	b.WriteString(e.Kind.String())
	if e.Op != "" || e.URL != "" {
		fmt.Fprintf(&b, ": %s %q", e.Op, e.URL)
	}
	if e.Attempts > 0 {
		fmt.Fprintf(&b, " (attempts: %d)", e.Attempts)
	}
	if inner, ok := e.Err.(*Error); ok && inner.Op == e.Op && inner.URL == e.URL {
		b.WriteString(": ")
		b.WriteString(inner.Kind.String())
		if inner.Err != nil {
			b.WriteString(": ")
			b.WriteString(inner.Err.Error())
		}
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Timeout reports whether the underlying failure was a timeout, either
// of a single attempt or of the whole execution.
func (e *Error) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// StatusError describes a response whose status code was translated
// into a failure.
type StatusError struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, text)
}

// NewError returns an *Error whose Op is method in the form used by
// url.Error. After-response handlers use it to report failures the same
// way the execution pipeline does.
func NewError(kind Kind, method, url string, attempts int, err error) *Error {
	return newError(kind, method, url, attempts, err)
}

func newError(kind Kind, method, url string, attempts int, err error) *Error {
	return &Error{
		Kind:     kind,
		Op:       urlErrorOp(method),
		URL:      url,
		Attempts: attempts,
		Err:      err,
	}
}

// wrapError attaches kind to err unless err already carries a kind.
func wrapError(kind Kind, method, url string, attempts int, err error) *Error {
	if x, ok := err.(*Error); ok {
		if x.Attempts != 0 {
			return x
		}
		y := *x
		y.Attempts = attempts
		return &y
	}
	return newError(kind, method, url, attempts, err)
}

func urlErrorWrap(method, u string, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(method),
		URL: u,
		Err: err,
	}
}

// urlErrorOp renders method the way net/http names url.Error ops.
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
