// Copyright 2021 The apiclient Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package apiclient

import (
	"net/http"
	"time"

	"github.com/gogama/apiclient/request"
	"github.com/gogama/apiclient/serial"
)

// A Response is the immutable result of executing a request
// descriptor: status, headers, the fully buffered body, and timing.
//
// Decode and As deserialize the body lazily using the deserializer of
// the descriptor that produced the response.
type Response struct {
	statusCode   int
	header       http.Header
	body         []byte
	elapsed      time.Duration
	attempts     int
	deserializer serial.Deserializer
}

// NewResponse returns a Response with the given status, headers and
// body. It is intended for RequestClient implementations and
// after-response handlers. The header is cloned.
func NewResponse(statusCode int, header http.Header, body []byte) *Response {
	return &Response{
		statusCode: statusCode,
		header:     header.Clone(),
		body:       body,
	}
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Success reports whether the status code is 2XX.
func (r *Response) Success() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// Header returns a copy of the response headers.
func (r *Response) Header() http.Header {
	return r.header.Clone()
}

// HeaderValue returns the first value of header key.
func (r *Response) HeaderValue(key string) string {
	return r.header.Get(key)
}

// Body returns the response body. The caller must not modify it.
func (r *Response) Body() []byte {
	return r.body
}

// Elapsed returns the time from the start of the execution to the
// receipt of the response, including any retries.
func (r *Response) Elapsed() time.Duration {
	return r.elapsed
}

// Attempts returns the number of attempts made to obtain the response.
func (r *Response) Attempts() int {
	return r.attempts
}

// WithStatusCode returns a copy of r with a different status code.
func (r *Response) WithStatusCode(code int) *Response {
	r2 := *r
	r2.statusCode = code
	return &r2
}

// WithHeader returns a copy of r with header key set to value.
func (r *Response) WithHeader(key, value string) *Response {
	r2 := *r
	r2.header = r.header.Clone()
	if r2.header == nil {
		r2.header = make(http.Header)
	}
	r2.header.Set(key, value)
	return &r2
}

// WithBody returns a copy of r with a different body.
func (r *Response) WithBody(b []byte) *Response {
	r2 := *r
	r2.body = b
	return &r2
}

// WithDeserializer returns a copy of r decoding with d.
func (r *Response) WithDeserializer(d serial.Deserializer) *Response {
	r2 := *r
	r2.deserializer = d
	return &r2
}

// Decode deserializes the body into v. A failure is returned as an
// *Error of kind KindSerialization.
func (r *Response) Decode(v interface{}) error {
	d := r.deserializer
	if d == nil {
		d = serial.Raw
	}
	if err := d.Deserialize(r.body, v); err != nil {
		return &Error{Kind: KindSerialization, Attempts: r.attempts, Err: err}
	}
	return nil
}

// As deserializes the body of r into a new value of type T.
func As[T any](r *Response) (T, error) {
	var v T
	err := r.Decode(&v)
	return v, err
}

// Into passes through err if it is non-nil, and otherwise
// deserializes the body of resp into a value of type T. It composes
// with the verb methods:
//
//	item, err := apiclient.Into[Item](api.Get(ctx, "/items/1"))
func Into[T any](resp *Response, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](resp)
}

func (r *Response) finish(e *request.Execution, d serial.Deserializer) *Response {
	r2 := *r
	r2.attempts = e.Attempt + 1
	r2.elapsed = time.Since(e.Start)
	r2.deserializer = d
	return &r2
}
