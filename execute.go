// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gogama/apiclient/request"
	"github.com/gogama/apiclient/retry"
	"github.com/rs/zerolog"
)

var errNilResponse = errors.New("apiclient: request client returned neither response nor error")

// Execute sends the descriptor and returns the final response.
//
// Execution proceeds as follows. The URL is resolved and the method
// and headers are validated; failures here are returned as a
// KindConfiguration error without any attempt being made. Then, for
// each attempt: the authentication strategy decorates a copy of the
// descriptor; the before-request handlers run in order; and the result
// is sent through the descriptor's RequestClient, bounded by the
// attempt timeout policy. After each attempt the retry policy decides
// whether to retry and how long to wait. Once no further retry will be
// done, the after-response handlers run in order on the final response.
//
// The descriptor's Timeout, if set, bounds the whole execution
// including retry waits. Cancelling ctx aborts the attempt in flight
// and suppresses any further retries.
//
// A non-2XX status is not an error unless the retry policy treated it
// as transient and the retry budget ran out (KindRetryExhausted), or an
// after-response handler translated it into one. Every error returned
// is an *Error; the response is nil whenever the error is non-nil.
//
// Debug-level details of each attempt are logged to the zerolog.Logger
// attached to ctx, if any.
func (r Request) Execute(ctx context.Context) (*Response, error) {
	if ctx == nil {
		panic("apiclient: nil context")
	}

	events := r.services.Events()
	policy := r.services.RetryPolicy()
	logger := zerolog.Ctx(ctx)
	method := r.Method()

	e := &request.Execution{
		Name:   r.name,
		Method: method,
	}
	var err error
	e.URL, err = r.resolve()
	events.run(BeforeExecutionStart, e)
	e.Start = time.Now()
	if err != nil {
		return r.end(e, nil, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var sent Request
	var resp *Response
	for {
		sent, resp, err = r.attempt(ctx, e)
		record(e, resp, err)
		if e.Timeout() {
			e.AttemptTimeouts++
			events.run(AfterAttemptTimeout, e)
		}
		events.run(AfterAttempt, e)
		if err != nil {
			logger.Debug().
				Str("name", e.Name).
				Str("method", method).
				Str("url", e.URL).
				Int("attempt", e.Attempt).
				Err(err).
				Msg("apiclient: attempt failed")
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				events.run(AfterExecutionTimeout, e)
			}
			break
		} else if errors.Is(err, ErrConfiguration) || errors.Is(err, ErrSerialization) {
			break
		} else if !policy.Decide(e) {
			if exhausted(policy, e) {
				err = r.exhaustedError(e, err)
				resp = nil
			}
			break
		}

		e.Wait = policy.Wait(e)
		events.run(BeforeRetryWait, e)
		logger.Debug().
			Str("name", e.Name).
			Str("method", method).
			Str("url", e.URL).
			Int("attempt", e.Attempt).
			Dur("wait", e.Wait).
			Msg("apiclient: retrying")
		if werr := wait(ctx, e.Wait); werr != nil {
			err = newError(KindTransport, method, e.URL, e.Attempt+1, urlErrorWrap(method, e.URL, werr))
			resp = nil
			e.Err = err
			if errors.Is(werr, context.DeadlineExceeded) {
				events.run(AfterExecutionTimeout, e)
			}
			break
		}

		e.PreviousTimeout = e.Timeout()
		e.Attempt++
		record(e, nil, nil)
		e.Wait = 0
	}

	if err != nil {
		return r.end(e, nil, err)
	}

	resp = resp.finish(e, sent.services.Deserializer())
	resp, err = runAfter(ctx, sent.services.after, sent, e.Name, resp)
	if err != nil {
		return r.end(e, nil, wrapError(KindInterceptor, method, e.URL, e.Attempt+1, err))
	}
	if resp == nil {
		return r.end(e, nil, newError(KindInterceptor, method, e.URL, e.Attempt+1, errNilResponse))
	}

	return r.end(e, resp, nil)
}

// attempt makes one attempt. It returns the descriptor as sent.
func (r Request) attempt(ctx context.Context, e *request.Execution) (Request, *Response, error) {
	method := r.Method()
	attempts := e.Attempt + 1
	a, name := r, r.name

	var err error
	if auth := r.services.Authenticator(); auth != nil {
		if a, err = auth.Authenticate(ctx, a); err != nil {
			return a, nil, wrapError(KindAuthentication, method, e.URL, attempts, err)
		}
	}

	if a, name, err = runBefore(ctx, r.services.before, a, name); err != nil {
		return a, nil, wrapError(KindInterceptor, method, e.URL, attempts, err)
	}
	u, err := a.resolve()
	if err != nil {
		return a, nil, wrapError(KindConfiguration, a.Method(), u, attempts, err)
	}
	e.Name = name
	e.URL = u
	r.services.Events().run(BeforeAttempt, e)

	if d := r.services.AttemptTimeout().Timeout(e); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	resp, err := a.services.Client().Execute(ctx, a)
	if err != nil {
		return a, nil, wrapError(KindTransport, a.Method(), e.URL, attempts, err)
	} else if resp == nil {
		return a, nil, newError(KindTransport, a.Method(), e.URL, attempts, errNilResponse)
	}

	return a, resp, nil
}

func (r Request) end(e *request.Execution, resp *Response, err error) (*Response, error) {
	e.End = time.Now()
	if err != nil {
		e.Err = err
	}
	r.services.Events().run(AfterExecutionEnd, e)
	return resp, err
}

func (r Request) exhaustedError(e *request.Execution, err error) error {
	if err == nil {
		err = &StatusError{
			StatusCode: e.StatusCode,
			Header:     e.Header,
			Body:       e.Body,
		}
	}
	return newError(KindRetryExhausted, r.Method(), e.URL, e.Attempt+1, err)
}

func record(e *request.Execution, resp *Response, err error) {
	if resp == nil || err != nil {
		e.StatusCode = 0
		e.Header = nil
		e.Body = nil
		e.Err = err
		return
	}

	e.StatusCode = resp.statusCode
	e.Header = resp.header
	e.Body = resp.body
	e.Err = nil
}

func exhausted(p retry.Policy, e *request.Execution) bool {
	if x, ok := p.(retry.Exhauster); ok {
		return x.Exhausted(e)
	}
	return e.Attempt > 0 && e.Err != nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get executes a copy of r with method GET. If resource is given, it
// replaces the descriptor's resource. At most one resource may be
// given.
func (r Request) Get(ctx context.Context, resource ...string) (*Response, error) {
	return r.verb(ctx, http.MethodGet, resource)
}

// Head executes a copy of r with method HEAD, in the manner of Get.
func (r Request) Head(ctx context.Context, resource ...string) (*Response, error) {
	return r.verb(ctx, http.MethodHead, resource)
}

// Post executes a copy of r with method POST, in the manner of Get.
func (r Request) Post(ctx context.Context, resource ...string) (*Response, error) {
	return r.verb(ctx, http.MethodPost, resource)
}

// Put executes a copy of r with method PUT, in the manner of Get.
func (r Request) Put(ctx context.Context, resource ...string) (*Response, error) {
	return r.verb(ctx, http.MethodPut, resource)
}

// Patch executes a copy of r with method PATCH, in the manner of Get.
func (r Request) Patch(ctx context.Context, resource ...string) (*Response, error) {
	return r.verb(ctx, http.MethodPatch, resource)
}

// Delete executes a copy of r with method DELETE, in the manner of Get.
func (r Request) Delete(ctx context.Context, resource ...string) (*Response, error) {
	return r.verb(ctx, http.MethodDelete, resource)
}

func (r Request) verb(ctx context.Context, method string, resource []string) (*Response, error) {
	r = r.WithMethod(method)
	switch len(resource) {
	case 0:
	case 1:
		r = r.WithResource(resource[0])
	default:
		panic("apiclient: at most one resource")
	}
	return r.Execute(ctx)
}
